package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and defaults the incoming config, then checks
// it. The normalized copy is what gets saved.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Search.Provider = strings.ToLower(strings.TrimSpace(out.Search.Provider))
	out.Search.SERP.Method = strings.ToUpper(strings.TrimSpace(out.Search.SERP.Method))
	out.Search.SERP.BaseURL = strings.TrimSpace(out.Search.SERP.BaseURL)
	out.Search.SERP.AuthHeader = strings.TrimSpace(out.Search.SERP.AuthHeader)
	out.Search.SERP.KeyParam = strings.TrimSpace(out.Search.SERP.KeyParam)
	out.Scan.Location = strings.TrimSpace(out.Scan.Location)
	out.Scan.RadiusPhrase = strings.TrimSpace(out.Scan.RadiusPhrase)
	out.SMTP.Host = strings.TrimSpace(out.SMTP.Host)
	out.SMTP.Username = strings.TrimSpace(out.SMTP.Username)
	out.Mailbox.IMAPHost = strings.TrimSpace(out.Mailbox.IMAPHost)
	out.Mailbox.Username = strings.TrimSpace(out.Mailbox.Username)

	// drop empty/duplicate categories
	seen := map[string]bool{}
	var cats []Category
	for _, c := range out.Scan.Categories {
		c.Name = strings.TrimSpace(c.Name)
		c.Query = strings.TrimSpace(c.Query)
		if c.Query == "" {
			continue
		}
		key := strings.ToLower(c.Query)
		if seen[key] {
			continue
		}
		seen[key] = true
		if c.Name == "" {
			c.Name = c.Query
		}
		cats = append(cats, c)
	}
	out.Scan.Categories = cats

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.Search.Provider {
	case "bing", "serp":
	case "":
		res.addErr("search.provider is required (bing or serp)")
	default:
		res.addErr("search.provider must be bing or serp, got %q", out.Search.Provider)
	}
	if out.Search.Count <= 0 {
		res.addErr("search.count must be > 0")
	} else if out.Search.Count > 50 {
		res.addWarn("search.count is high (%d); most providers cap results per page.", out.Search.Count)
	}

	if out.Search.Provider == "serp" {
		if out.Search.SERP.BaseURL == "" {
			res.addErr("search.serp.base_url is required when search.provider=serp")
		}
		if out.Search.SERP.Method != "" && out.Search.SERP.Method != "GET" && out.Search.SERP.Method != "POST" {
			res.addErr("search.serp.method must be GET or POST")
		}
		if out.Search.SERP.AuthHeader == "" && out.Search.SERP.KeyParam == "" {
			res.addWarn("search.serp has neither auth_header nor key_param; the API key will not be sent.")
		}
	}

	if len(out.Scan.Categories) == 0 {
		res.addErr("scan.categories must have at least one entry")
	}
	if out.Scan.Location == "" {
		res.addErr("scan.location is required")
	}
	if out.Scan.MaxSites <= 0 {
		res.addErr("scan.max_sites must be > 0")
	}
	if out.Scan.RequestsPerSec <= 0 {
		res.addErr("scan.requests_per_sec must be > 0")
	} else if out.Scan.RequestsPerSec > 2 {
		res.addWarn("scan.requests_per_sec is high (%.1f) and may trip provider rate limits.", out.Scan.RequestsPerSec)
	}
	if out.Scan.FetchTimeoutSeconds <= 0 {
		res.addErr("scan.fetch_timeout_seconds must be > 0")
	}

	if out.SMTP.Host != "" {
		if out.SMTP.Port == 0 {
			res.addErr("smtp.port is required when smtp.host is set")
		}
		if out.SMTP.UseStartTLS && out.SMTP.Port == 465 {
			res.addWarn("smtp.use_starttls=true with port 465; implicit TLS servers usually want use_starttls=false.")
		}
		if !out.SMTP.UseStartTLS && out.SMTP.Port == 587 {
			res.addWarn("smtp.use_starttls=false with port 587; STARTTLS servers usually want use_starttls=true.")
		}
	}

	if out.Campaign.DailyCap <= 0 {
		res.addErr("campaign.daily_cap must be > 0")
	}
	if out.Campaign.SendDelayMS < 0 {
		res.addErr("campaign.send_delay_ms cannot be negative")
	} else if out.Campaign.SendDelayMS == 0 {
		res.addWarn("campaign.send_delay_ms is 0; back-to-back sends can look like spam bursts.")
	}
	if strings.TrimSpace(out.Campaign.Subject) == "" {
		res.addWarn("campaign.subject is empty.")
	}

	if out.Mailbox.Enabled {
		if out.Mailbox.IMAPHost == "" {
			res.addErr("mailbox.imap_host is required when mailbox.enabled=true")
		}
		if out.Mailbox.IMAPPort == 0 {
			res.addErr("mailbox.imap_port is required when mailbox.enabled=true")
		}
		if out.Mailbox.Username == "" {
			res.addErr("mailbox.username is required when mailbox.enabled=true")
		}
		if strings.TrimSpace(out.Mailbox.Mailbox) == "" {
			res.addErr("mailbox.mailbox is required when mailbox.enabled=true")
		}
	}

	return out, res
}
