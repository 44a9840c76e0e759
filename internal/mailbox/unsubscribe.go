package mailbox

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"

	"prospector-engine/internal/config"
	"prospector-engine/internal/store"
)

const scanTimeout = 60 * time.Second

// The outgoing signature invites recipients to reply with this word.
const unsubscribeMarker = "unsubscribe"

// ScanOnce reads unseen inbox messages and suppresses the sender of any
// that ask to unsubscribe. Every fetched message is marked seen; a message
// that fails to parse is skipped, never fatal. Returns how many addresses
// were newly suppressed.
func ScanOnce(db *sql.DB, cfg config.Config, password string, onSuppressed func(email string)) (added int, err error) {
	if db == nil {
		return 0, errors.New("db is nil")
	}
	if !cfg.Mailbox.Enabled {
		return 0, nil
	}
	if cfg.Mailbox.IMAPHost == "" || cfg.Mailbox.Username == "" {
		return 0, errors.New("mailbox enabled but missing imap_host/username")
	}
	if password == "" {
		return 0, errors.New("missing imap password (set it in the keychain)")
	}

	addr := cfg.Mailbox.IMAPHost
	if cfg.Mailbox.IMAPPort != 0 && !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, cfg.Mailbox.IMAPPort)
	} else if !strings.Contains(addr, ":") {
		addr += ":993"
	}

	mbox := cfg.Mailbox.Mailbox
	if mbox == "" {
		mbox = "INBOX"
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	c, err := DialAndLogin(ctx, addr, cfg.Mailbox.Username, password, &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: cfg.Mailbox.IMAPHost,
	})
	if err != nil {
		return 0, err
	}
	defer LogoutAndClose(c)

	if _, err := c.Select(mbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return 0, fmt.Errorf("imap select %q: %w", mbox, err)
	}

	msgs, err := FetchUnseen(ctx, c, 0)
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	processed := make([]imap.UID, 0, len(msgs))

	for _, m := range msgs {
		processed = append(processed, m.UID)

		if !wantsUnsubscribe(m.Subject, bodyText(m.RawMessage)) {
			continue
		}

		email := senderAddr(m.From)
		if email == "" {
			continue
		}

		ok, serr := store.Suppress(ctx, db, email, "reply")
		if serr != nil {
			log.Printf("[mailbox] suppress failed from=%s err=%v", email, serr)
			continue
		}
		if ok {
			added++
			log.Printf("[mailbox] suppressed from=%s subject=%q", email, m.Subject)
			if onSuppressed != nil {
				onSuppressed(email)
			}
		}
	}

	if err := MarkSeen(c, processed); err != nil {
		return added, fmt.Errorf("mark seen: %w", err)
	}

	return added, nil
}

func wantsUnsubscribe(subject, body string) bool {
	return strings.Contains(strings.ToLower(subject), unsubscribeMarker) ||
		strings.Contains(strings.ToLower(body), unsubscribeMarker)
}
