package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"prospector-engine/internal/config"
	"prospector-engine/internal/events"
	"prospector-engine/internal/httpapi"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one),
	// else local folder.
	dataDir := os.Getenv("PROSPECTOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would race the config
	// file and double-send campaigns.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, warn := range vr.Warnings {
			log.Printf("[config] warn: %s", warn)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %s", strings.Join(vr.Errors, "; "))
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "prospector.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}
	if n, err := store.CleanupOldSends(db.Pool); err != nil {
		log.Printf("[store] send-log cleanup failed: %v", err)
	} else if n > 0 {
		log.Printf("[store] send-log cleanup removed %d rows", n)
	}

	hub := events.NewHub()
	leadStore := leads.NewStore()

	var scanStatus atomic.Value
	scanStatus.Store(httpapi.ScanStatus{})
	var campaignStatus atomic.Value
	campaignStatus.Store(httpapi.CampaignStatus{})

	deps := httpapi.Deps{
		DB:    db.Pool,
		Hub:   hub,
		Leads: leadStore,

		CfgVal:         &cfgVal,
		ScanStatus:     &scanStatus,
		CampaignStatus: &campaignStatus,

		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,

		RunScan:     runScan(leadStore),
		RunCampaign: runCampaign(db.Pool, leadStore),
		TestSend:    testSend,
		ScanMailbox: scanMailbox(db.Pool),
	}

	mux := httpapi.NewMux(deps)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// /shutdown is token-guarded so only the process that spawned the
	// engine (and read the token file) can stop it.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	tokenPath := filepath.Join(dataDir, "engine.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Printf("engine listening on http://%s (db=%s, config=%s)", addr, dbPath, userCfgPath)
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Printf("engine stopped")
}
