package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"time"

	"prospector-engine/internal/campaign"
	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/extract"
	"prospector-engine/internal/httpx"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/mailbox"
	"prospector-engine/internal/scan"
	"prospector-engine/internal/search"
	"prospector-engine/internal/secrets"
)

// buildProvider picks the configured search backend. The API key lives in
// the OS keychain, never in the config file.
func buildProvider(cfg config.Config) (search.Provider, error) {
	client := httpx.New(cfg.Scan.RequestsPerSec, fetchTimeout(cfg))
	key := secrets.GetOrEmpty(secrets.SearchKeyAccount(cfg))

	switch cfg.Search.Provider {
	case "bing":
		return &search.Bing{Client: client, Key: key}, nil
	case "serp":
		return &search.SERP{
			Client:     client,
			BaseURL:    cfg.Search.SERP.BaseURL,
			Key:        key,
			Method:     cfg.Search.SERP.Method,
			AuthHeader: cfg.Search.SERP.AuthHeader,
			KeyParam:   cfg.Search.SERP.KeyParam,
		}, nil
	default:
		return nil, errors.New("unknown search provider: " + cfg.Search.Provider)
	}
}

func fetchTimeout(cfg config.Config) time.Duration {
	if cfg.Scan.FetchTimeoutSeconds > 0 {
		return time.Duration(cfg.Scan.FetchTimeoutSeconds) * time.Second
	}
	return 15 * time.Second
}

func buildSender(cfg config.Config) *campaign.SMTPSender {
	return &campaign.SMTPSender{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    secrets.GetOrEmpty(secrets.SMTPAccount(cfg)),
		UseStartTLS: cfg.SMTP.UseStartTLS,
	}
}

func campaignMessage(cfg config.Config) domain.CampaignMessage {
	return domain.CampaignMessage{
		Subject:       cfg.Campaign.Subject,
		GreetingHTML:  cfg.Campaign.GreetingHTML,
		BodyHTML:      cfg.Campaign.BodyHTML,
		SignatureHTML: cfg.Campaign.SignatureHTML,
	}
}

func runScan(st *leads.Store) func(ctx context.Context, cfg config.Config, onLead func(domain.Lead)) (scan.Result, error) {
	return func(ctx context.Context, cfg config.Config, onLead func(domain.Lead)) (scan.Result, error) {
		provider, err := buildProvider(cfg)
		if err != nil {
			return scan.Result{}, err
		}
		ex := &extract.Extractor{Client: httpx.New(cfg.Scan.RequestsPerSec, fetchTimeout(cfg))}
		return scan.Run(ctx, provider, ex, st, cfg, onLead)
	}
}

func runCampaign(db *sql.DB, st *leads.Store) func(ctx context.Context, cfg config.Config, onSent func(string)) (campaign.Result, error) {
	return func(ctx context.Context, cfg config.Config, onSent func(string)) (campaign.Result, error) {
		sender := buildSender(cfg)
		delay := time.Duration(cfg.Campaign.SendDelayMS) * time.Millisecond
		return campaign.Run(ctx, db, st, sender, campaignMessage(cfg), cfg.Campaign.DailyCap, delay, onSent)
	}
}

func testSend(ctx context.Context, cfg config.Config, to string) error {
	sender := buildSender(cfg)
	msg := campaignMessage(cfg)
	html := campaign.RenderMessage(msg.GreetingHTML, msg.BodyHTML, msg.SignatureHTML)
	return sender.Send(ctx, campaign.Message{To: to, Subject: msg.Subject, HTML: html})
}

func scanMailbox(db *sql.DB) func(cfg config.Config, onSuppressed func(string)) (int, error) {
	return func(cfg config.Config, onSuppressed func(string)) (int, error) {
		password := secrets.GetOrEmpty(secrets.IMAPAccount(cfg))
		return mailbox.ScanOnce(db, cfg, password, onSuppressed)
	}
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token *string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard (covers typical desktop usage)
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RemoteAddr can sometimes be just a host; fall back safely
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Token guard
		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}
