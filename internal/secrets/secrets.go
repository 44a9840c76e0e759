package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"prospector-engine/internal/config"
)

// "Service" groups the engine's secrets in the OS keychain. Credentials
// never touch the config file on disk.
const KeyringService = "prospector"

func Get(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", errors.New("secret not found in keychain")
	}
	return pw, nil
}

// GetOrEmpty is for soft-fail call sites (search key, SMTP without auth):
// a missing secret is just empty.
func GetOrEmpty(account string) string {
	pw, err := Get(account)
	if err != nil {
		return ""
	}
	return pw
}

func Set(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func SMTPAccount(cfg config.Config) string {
	return fmt.Sprintf("prospector:smtp:%s@%s", cfg.SMTP.Username, cfg.SMTP.Host)
}

func SearchKeyAccount(cfg config.Config) string {
	return fmt.Sprintf("prospector:search:%s", cfg.Search.Provider)
}

func IMAPAccount(cfg config.Config) string {
	return fmt.Sprintf("prospector:imap:%s@%s", cfg.Mailbox.Username, cfg.Mailbox.IMAPHost)
}
