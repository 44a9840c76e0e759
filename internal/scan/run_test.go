package scan_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/extract"
	"prospector-engine/internal/httpx"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/scan"
)

type stubProvider struct {
	urls []string
	err  error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(ctx context.Context, query string, count int) ([]string, error) {
	return p.urls, p.err
}

func scanConfig() config.Config {
	var cfg config.Config
	cfg.Search.Count = 20
	cfg.Scan.Location = "Miami, FL"
	cfg.Scan.RadiusPhrase = "25 miles"
	cfg.Scan.Categories = []config.Category{{Name: "GC", Query: "General Contractors"}}
	cfg.Scan.MaxSites = 10
	cfg.Scan.RequestsPerSec = 100
	cfg.Scan.FetchTimeoutSeconds = 5
	return cfg
}

func contactSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>Acme Co</title></head><body>welcome</body></html>`))
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Acme Co | Contact</title></head><body>info@acme.com</body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newExtractor() *extract.Extractor {
	return &extract.Extractor{Client: httpx.New(100, 5*time.Second)}
}

func TestRunAddsLeadFromContactPage(t *testing.T) {
	srv := contactSite(t)
	provider := &stubProvider{urls: []string{srv.URL, srv.URL + "/dup-path"}}
	st := leads.NewStore()

	var seen []domain.Lead
	res, err := scan.Run(context.Background(), provider, newExtractor(), st, scanConfig(), func(l domain.Lead) {
		seen = append(seen, l)
	})
	require.NoError(t, err)

	// both URLs share a host, so only one candidate is probed
	require.Equal(t, 1, res.Candidates)
	require.Equal(t, 1, res.Added)
	require.Len(t, seen, 1)
	require.Equal(t, "info@acme.com", seen[0].Email)
	require.Equal(t, "Acme Co", seen[0].Company)
	require.Equal(t, srv.URL, seen[0].Website)
	require.Equal(t, "stub", seen[0].Source)
}

func TestRunSkipsKnownEmails(t *testing.T) {
	srv := contactSite(t)
	provider := &stubProvider{urls: []string{srv.URL}}
	st := leads.NewStore()
	st.Upsert("Existing", "info@acme.com", "https://elsewhere.com", "", "bing")

	res, err := scan.Run(context.Background(), provider, newExtractor(), st, scanConfig(), nil)
	require.NoError(t, err)
	require.Zero(t, res.Added)
	require.Equal(t, 1, st.Len())
}

func TestRunNoCategoriesErrors(t *testing.T) {
	cfg := scanConfig()
	cfg.Scan.Categories = nil

	_, err := scan.Run(context.Background(), &stubProvider{}, newExtractor(), leads.NewStore(), cfg, nil)
	require.Error(t, err)
}

func TestRunProviderFailureIsBestEffort(t *testing.T) {
	provider := &stubProvider{err: context.DeadlineExceeded}
	res, err := scan.Run(context.Background(), provider, newExtractor(), leads.NewStore(), scanConfig(), nil)
	require.NoError(t, err)
	require.Zero(t, res.Candidates)
	require.Zero(t, res.Added)
}
