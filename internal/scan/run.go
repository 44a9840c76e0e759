package scan

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/extract"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/search"
)

const searchTimeout = 25 * time.Second

// Result summarizes one scan run.
type Result struct {
	Queries    int `json:"queries"`
	Candidates int `json:"candidates"`
	Added      int `json:"added"`
}

// Run executes one scan: one query per category against the provider,
// candidate URLs deduplicated by host, then each site probed page by page
// until an email turns up. Provider and site failures are logged and
// skipped; the run always finishes with whatever it found.
func Run(
	ctx context.Context,
	provider search.Provider,
	ex *extract.Extractor,
	st *leads.Store,
	cfg config.Config,
	onLead func(lead domain.Lead),
) (Result, error) {
	queries := search.BuildQueries(cfg.Scan.Location, cfg.Scan.RadiusPhrase, cfg.Scan.Categories)
	if len(queries) == 0 {
		return Result{}, errors.New("no categories configured")
	}

	perQuery := cfg.Scan.MaxSites / len(queries)
	if perQuery < 10 {
		perQuery = 10
	}
	if cfg.Search.Count > 0 && perQuery > cfg.Search.Count {
		perQuery = cfg.Search.Count
	}

	var g errgroup.Group
	results := make(chan []string, len(queries))

	for _, q := range queries {
		q := q
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, searchTimeout)
			defer cancel()

			log.Printf("[search:%s] category=%q", provider.Name(), q.Category)
			urls, err := provider.Search(sctx, q.Text, perQuery)
			if err != nil {
				log.Printf("[search:%s] category=%q err: %v", provider.Name(), q.Category, err)
				return nil // best-effort: don't cancel sibling queries
			}
			results <- urls
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	var all []string
	for urls := range results {
		all = append(all, urls...)
	}

	candidates := dedupeByDomain(all, cfg.Scan.MaxSites)
	log.Printf("[scan] unique candidate sites: %d", len(candidates))

	res := Result{Queries: len(queries), Candidates: len(candidates)}
	fetchTimeout := time.Duration(cfg.Scan.FetchTimeoutSeconds) * time.Second
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}

	for _, base := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		info, ok := probeSite(ctx, ex, base, fetchTimeout)
		if !ok {
			continue
		}

		if st.Upsert(info.Company, info.Email, base, info.Phone, provider.Name()) {
			res.Added++
			if onLead != nil {
				onLead(domain.Lead{
					Company: info.Company,
					Email:   info.Email,
					Website: base,
					Phone:   info.Phone,
					Source:  provider.Name(),
				})
			}
		}
	}

	return res, nil
}

// probeSite tries the candidate pages in order and stops at the first one
// with an email. Pacing between probes comes from the client's host
// limiter.
func probeSite(ctx context.Context, ex *extract.Extractor, base string, timeout time.Duration) (extract.Info, bool) {
	for _, target := range extract.CandidatePages(base) {
		fctx, cancel := context.WithTimeout(ctx, timeout)
		info := ex.Extract(fctx, target)
		cancel()

		if info.Email != "" {
			return info, true
		}
	}
	return extract.Info{}, false
}

// dedupeByDomain keeps the first URL seen per lowercased host, capped at
// maxSites.
func dedupeByDomain(urls []string, maxSites int) []string {
	seen := map[string]bool{}
	var out []string
	for _, u := range urls {
		d := search.DomainOf(u)
		if d == "" {
			d = strings.ToLower(u)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, u)
		if maxSites > 0 && len(out) >= maxSites {
			break
		}
	}
	return out
}
