package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{Leads: d.Leads, ScanStatus: d.ScanStatus, CampaignStatus: d.CampaignStatus}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Leads
	lh := LeadsHandler{Leads: d.Leads}
	mux.HandleFunc("/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/leads/reset", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Reset,
	}))
	mux.HandleFunc("/leads/export", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.ExportCSV,
	}))
	mux.HandleFunc("/leads/import", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.ImportCSV,
	}))

	// Scan
	sch := ScanHandler{
		CfgVal:     d.CfgVal,
		ScanStatus: d.ScanStatus,
		Hub:        d.Hub,
		RunScan:    d.RunScan,
	}
	mux.HandleFunc("/scan/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scan/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	// Campaign
	cah := CampaignHandler{
		CfgVal:         d.CfgVal,
		CampaignStatus: d.CampaignStatus,
		Hub:            d.Hub,
		RunCampaign:    d.RunCampaign,
		TestSend:       d.TestSend,
	}
	mux.HandleFunc("/campaign/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cah.Status,
	}))
	mux.HandleFunc("/campaign/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: cah.Run,
	}))
	mux.HandleFunc("/campaign/test", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: cah.Test,
	}))

	// Suppressions
	sup := SuppressionsHandler{DB: d.DB, CfgVal: d.CfgVal, Hub: d.Hub, ScanMailbox: d.ScanMailbox}
	mux.HandleFunc("/suppressions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sup.List,
	}))
	mux.HandleFunc("/suppressions/scan", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sup.Scan,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/smtp", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSMTPPassword,
	}))
	mux.HandleFunc("/api/secrets/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSearchKey,
	}))
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
