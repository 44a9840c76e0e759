package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/events"
	"prospector-engine/internal/scan"
)

type ScanHandler struct {
	CfgVal     *atomic.Value // config.Config
	ScanStatus *atomic.Value // httpapi.ScanStatus
	Hub        *events.Hub
	RunScan    func(ctx context.Context, cfg config.Config, onLead func(domain.Lead)) (scan.Result, error)
}

func (h ScanHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScanStatus.Load().(ScanStatus)
	writeJSON(w, st)
}

func (h ScanHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ScanStatus.Load().(ScanStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScanStatus.Store(ScanStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		res, err := h.RunScan(context.Background(), cfg, func(l domain.Lead) {
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadAdded, 1, l))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.ScanStatus.Load().(ScanStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = res.Added
		next.Candidates = res.Candidates
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScanStatus.Store(next)

		h.Hub.Publish(events.MakeEvent(reqID, events.TypeScanDone, 1, res))
	}()

	writeJSON(w, map[string]any{"ok": true})
}
