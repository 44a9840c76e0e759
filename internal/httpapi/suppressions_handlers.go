package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"

	"prospector-engine/internal/config"
	"prospector-engine/internal/events"
	"prospector-engine/internal/store"
)

type SuppressionsHandler struct {
	DB          *sql.DB
	CfgVal      *atomic.Value // config.Config
	Hub         *events.Hub
	ScanMailbox func(cfg config.Config, onSuppressed func(email string)) (int, error)
}

func (h SuppressionsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := store.ListSuppressions(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"suppressions": rows, "count": len(rows)})
}

// Scan checks the configured mailbox for unsubscribe replies and adds
// their senders to the suppression list. Synchronous; the mailbox fetch
// is bounded by its own timeout.
func (h SuppressionsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	reqID := RequestIDFrom(r.Context())

	added, err := h.ScanMailbox(cfg, func(email string) {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeSuppressionAdded, 1, map[string]string{"email": email}))
	})
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "mailbox_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true, "added": added})
}
