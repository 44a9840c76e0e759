package httpapi

import (
	"net/http"

	"prospector-engine/internal/leads"
)

type LeadsHandler struct {
	Leads *leads.Store
}

func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows := h.Leads.Snapshot()
	writeJSON(w, map[string]any{
		"leads": rows,
		"total": len(rows),
	})
}

func (h LeadsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Leads.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (h LeadsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)
	_ = h.Leads.ExportCSV(w)
}

func (h LeadsHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	imported, err := h.Leads.ImportCSV(r.Body)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_csv", "import failed: "+err.Error())
		return
	}
	writeJSON(w, map[string]any{"imported": imported, "total": h.Leads.Len()})
}
