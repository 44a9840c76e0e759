package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prospector-engine/internal/campaign"
	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/events"
	"prospector-engine/internal/httpapi"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/scan"
	"prospector-engine/internal/store"
)

func testDeps(t *testing.T) httpapi.Deps {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	var cfg config.Config
	cfg.App.Port = 38471
	cfg.Search.Provider = "bing"
	cfg.Search.Count = 20
	cfg.Scan.Location = "Miami, FL"
	cfg.Scan.Categories = []config.Category{{Name: "GC", Query: "General Contractors"}}
	cfg.Scan.MaxSites = 10
	cfg.Scan.RequestsPerSec = 1
	cfg.Scan.FetchTimeoutSeconds = 15
	cfg.Campaign.Subject = "Hello"
	cfg.Campaign.DailyCap = 100
	cfg.Campaign.SendDelayMS = 1

	var cfgVal, scanStatus, campaignStatus atomic.Value
	cfgVal.Store(cfg)
	scanStatus.Store(httpapi.ScanStatus{})
	campaignStatus.Store(httpapi.CampaignStatus{})

	userCfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, config.SaveAtomic(userCfgPath, cfg))

	return httpapi.Deps{
		DB:             db.Pool,
		Hub:            events.NewHub(),
		Leads:          leads.NewStore(),
		CfgVal:         &cfgVal,
		ScanStatus:     &scanStatus,
		CampaignStatus: &campaignStatus,
		UserCfgPath:    userCfgPath,
		LoadCfg: func() (config.Config, error) {
			return config.Load(userCfgPath)
		},
		RunScan: func(ctx context.Context, cfg config.Config, onLead func(domain.Lead)) (scan.Result, error) {
			return scan.Result{Queries: 1, Candidates: 3, Added: 2}, nil
		},
		RunCampaign: func(ctx context.Context, cfg config.Config, onSent func(string)) (campaign.Result, error) {
			return campaign.Result{Sent: 2}, nil
		},
		TestSend: func(ctx context.Context, cfg config.Config, to string) error {
			return nil
		},
		ScanMailbox: func(cfg config.Config, onSuppressed func(string)) (int, error) {
			return 0, nil
		},
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(httpapi.NewMux(testDeps(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, true, body["ok"])
}

func TestLeadsEndpoints(t *testing.T) {
	deps := testDeps(t)
	srv := httptest.NewServer(httpapi.NewMux(deps))
	defer srv.Close()

	csv := "Company,Email,Website,Phone,Source\nAcme,info@acme.com,https://acme.com,,bing\n"
	resp, err := http.Post(srv.URL+"/leads/import", "text/csv", strings.NewReader(csv))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/leads")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Leads []domain.Lead `json:"leads"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Total)
	require.Equal(t, "info@acme.com", body.Leads[0].Email)
	require.Equal(t, "import", body.Leads[0].Source)

	resp, err = http.Post(srv.URL+"/leads/reset", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, 0, deps.Leads.Len())
}

func TestScanRunAsync(t *testing.T) {
	deps := testDeps(t)
	srv := httptest.NewServer(httpapi.NewMux(deps))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/scan/run", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		st := deps.ScanStatus.Load().(httpapi.ScanStatus)
		return !st.Running && st.LastAdded == 2
	}, 2*time.Second, 10*time.Millisecond)

	st := deps.ScanStatus.Load().(httpapi.ScanStatus)
	require.Equal(t, 3, st.Candidates)
	require.Empty(t, st.LastError)
	require.NotEmpty(t, st.LastOkAt)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(httpapi.NewMux(testDeps(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/scan/run")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestConfigPutRejectsInvalid(t *testing.T) {
	deps := testDeps(t)
	srv := httptest.NewServer(httpapi.NewMux(deps))
	defer srv.Close()

	cfg := deps.CfgVal.Load().(config.Config)
	cfg.Campaign.DailyCap = 0
	b, _ := json.Marshal(cfg)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/config", strings.NewReader(string(b)))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var vr config.Validation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&vr))
	require.NotEmpty(t, vr.Errors)
}

func TestConfigPutRoundTrip(t *testing.T) {
	deps := testDeps(t)
	srv := httptest.NewServer(httpapi.NewMux(deps))
	defer srv.Close()

	cfg := deps.CfgVal.Load().(config.Config)
	cfg.Scan.Location = "Fort Lauderdale, FL"
	b, _ := json.Marshal(cfg)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/config", strings.NewReader(string(b)))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cur := deps.CfgVal.Load().(config.Config)
	require.Equal(t, "Fort Lauderdale, FL", cur.Scan.Location)
}

func TestSuppressionsList(t *testing.T) {
	deps := testDeps(t)
	srv := httptest.NewServer(httpapi.NewMux(deps))
	defer srv.Close()

	_, err := store.Suppress(context.Background(), deps.DB, "gone@x.com", "reply")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/suppressions")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Suppressions []store.Suppression `json:"suppressions"`
		Count        int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Count)
	require.Equal(t, "gone@x.com", body.Suppressions[0].Email)
}

func TestCampaignTestRequiresRecipient(t *testing.T) {
	srv := httptest.NewServer(httpapi.NewMux(testDeps(t)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/campaign/test", "application/json", strings.NewReader(`{"to":""}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
