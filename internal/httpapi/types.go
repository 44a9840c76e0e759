package httpapi

type ScanStatus struct {
	LastRunAt  string `json:"last_run_at"`
	LastOkAt   string `json:"last_ok_at"`
	LastError  string `json:"last_error"`
	LastAdded  int    `json:"last_added"`
	Candidates int    `json:"candidates"`
	Running    bool   `json:"running"`
}

type CampaignStatus struct {
	LastRunAt  string `json:"last_run_at"`
	LastOkAt   string `json:"last_ok_at"`
	LastError  string `json:"last_error"`
	LastSent   int    `json:"last_sent"`
	LastFailed int    `json:"last_failed"`
	Running    bool   `json:"running"`
}
