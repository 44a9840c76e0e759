package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"prospector-engine/internal/campaign"
	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/events"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/scan"
)

type Deps struct {
	DB    *sql.DB
	Hub   *events.Hub
	Leads *leads.Store

	// Atomic stores
	CfgVal         *atomic.Value // stores config.Config
	ScanStatus     *atomic.Value // stores httpapi.ScanStatus
	CampaignStatus *atomic.Value // stores httpapi.CampaignStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Entrypoints (injected for testability; cmd wires the real pipeline)
	RunScan     func(ctx context.Context, cfg config.Config, onLead func(domain.Lead)) (scan.Result, error)
	RunCampaign func(ctx context.Context, cfg config.Config, onSent func(email string)) (campaign.Result, error)
	TestSend    func(ctx context.Context, cfg config.Config, to string) error
	ScanMailbox func(cfg config.Config, onSuppressed func(email string)) (added int, err error)
}
