// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Category struct {
	Name  string `yaml:"name" json:"name"`
	Query string `yaml:"query" json:"query"` // keyword phrase, e.g. "General Contractors"
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		Provider string `yaml:"provider" json:"provider"` // bing | serp
		Count    int    `yaml:"count" json:"count"`       // per-query result cap

		SERP struct {
			BaseURL    string `yaml:"base_url" json:"base_url"`
			Method     string `yaml:"method" json:"method"`           // GET | POST
			AuthHeader string `yaml:"auth_header" json:"auth_header"` // blank = no header auth
			KeyParam   string `yaml:"key_param" json:"key_param"`     // blank = no query-param auth
		} `yaml:"serp" json:"serp"`
	} `yaml:"search" json:"search"`

	Scan struct {
		Location            string     `yaml:"location" json:"location"`
		RadiusPhrase        string     `yaml:"radius_phrase" json:"radius_phrase"`
		Categories          []Category `yaml:"categories" json:"categories"`
		MaxSites            int        `yaml:"max_sites" json:"max_sites"`
		RequestsPerSec      float64    `yaml:"requests_per_sec" json:"requests_per_sec"`
		FetchTimeoutSeconds int        `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
	} `yaml:"scan" json:"scan"`

	SMTP struct {
		Host        string `yaml:"host" json:"host"`
		Port        int    `yaml:"port" json:"port"`
		Username    string `yaml:"username" json:"username"`
		UseStartTLS bool   `yaml:"use_starttls" json:"use_starttls"` // true: 587, false: implicit TLS 465
	} `yaml:"smtp" json:"smtp"`

	Campaign struct {
		Subject       string `yaml:"subject" json:"subject"`
		GreetingHTML  string `yaml:"greeting_html" json:"greeting_html"`
		BodyHTML      string `yaml:"body_html" json:"body_html"`
		SignatureHTML string `yaml:"signature_html" json:"signature_html"`
		DailyCap      int    `yaml:"daily_cap" json:"daily_cap"`
		SendDelayMS   int    `yaml:"send_delay_ms" json:"send_delay_ms"`
	} `yaml:"campaign" json:"campaign"`

	Mailbox struct {
		Enabled  bool   `yaml:"enabled" json:"enabled"`
		IMAPHost string `yaml:"imap_host" json:"imap_host"`
		IMAPPort int    `yaml:"imap_port" json:"imap_port"`
		Username string `yaml:"username" json:"username"`
		Mailbox  string `yaml:"mailbox" json:"mailbox"`
	} `yaml:"mailbox" json:"mailbox"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
