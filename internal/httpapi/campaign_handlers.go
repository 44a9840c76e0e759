package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"prospector-engine/internal/campaign"
	"prospector-engine/internal/config"
	"prospector-engine/internal/events"
)

type CampaignHandler struct {
	CfgVal         *atomic.Value // config.Config
	CampaignStatus *atomic.Value // httpapi.CampaignStatus
	Hub            *events.Hub
	RunCampaign    func(ctx context.Context, cfg config.Config, onSent func(email string)) (campaign.Result, error)
	TestSend       func(ctx context.Context, cfg config.Config, to string) error
}

func (h CampaignHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.CampaignStatus.Load().(CampaignStatus)
	writeJSON(w, st)
}

func (h CampaignHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.CampaignStatus.Load().(CampaignStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.CampaignStatus.Store(CampaignStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		res, err := h.RunCampaign(context.Background(), cfg, func(email string) {
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeEmailSent, 1, map[string]string{"email": email}))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.CampaignStatus.Load().(CampaignStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastSent = res.Sent
		next.LastFailed = res.Failed
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.CampaignStatus.Store(next)

		h.Hub.Publish(events.MakeEvent(reqID, events.TypeCampaignDone, 1, res))
	}()

	writeJSON(w, map[string]any{"ok": true})
}

func (h CampaignHandler) Test(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	to := strings.TrimSpace(body.To)
	if to == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_to", "field 'to' is required")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	if err := h.TestSend(ctx, cfg, to); err != nil {
		WriteError(w, r, http.StatusBadGateway, "send_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
