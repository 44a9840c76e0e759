package httpapi

import (
	"net/http"
	"sync/atomic"

	"prospector-engine/internal/leads"
)

type HealthHandler struct {
	Leads          *leads.Store
	ScanStatus     *atomic.Value // httpapi.ScanStatus
	CampaignStatus *atomic.Value // httpapi.CampaignStatus
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	scan := h.ScanStatus.Load().(ScanStatus)
	camp := h.CampaignStatus.Load().(CampaignStatus)
	writeJSON(w, map[string]any{
		"ok":               true,
		"leads":            h.Leads.Len(),
		"scan_running":     scan.Running,
		"campaign_running": camp.Running,
	})
}
