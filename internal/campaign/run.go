package campaign

import (
	"context"
	"database/sql"
	"log"
	"time"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/store"
)

// Result is what one campaign run did.
type Result struct {
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	Suppressed int `json:"suppressed"`
}

// Run sends the rendered message to stored leads in store order, bounded
// by the daily cap. The cap counts against the send ledger since local
// midnight, so a restart mid-day cannot double the volume. A failed send
// skips that recipient and keeps going; only a cancelled context stops the
// loop early.
func Run(
	ctx context.Context,
	db *sql.DB,
	st *leads.Store,
	sender Sender,
	msg domain.CampaignMessage,
	dailyCap int,
	sendDelay time.Duration,
	onSent func(email string),
) (Result, error) {
	var res Result

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sentToday, err := store.CountSentSince(ctx, db, midnight)
	if err != nil {
		return res, err
	}

	allowance := dailyCap - sentToday
	if allowance <= 0 {
		log.Printf("[campaign] daily cap reached (%d sent today, cap %d)", sentToday, dailyCap)
		return res, nil
	}

	html := RenderMessage(msg.GreetingHTML, msg.BodyHTML, msg.SignatureHTML)

	for _, email := range st.Emails() {
		if res.Sent >= allowance {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		suppressed, err := store.IsSuppressed(ctx, db, email)
		if err != nil {
			return res, err
		}
		if suppressed {
			res.Suppressed++
			continue
		}

		if err := sender.Send(ctx, Message{To: email, Subject: msg.Subject, HTML: html}); err != nil {
			log.Printf("[campaign] send failed to=%s err=%v", email, err)
			res.Failed++
			continue
		}

		if err := store.RecordSend(ctx, db, email, msg.Subject); err != nil {
			log.Printf("[campaign] ledger write failed to=%s err=%v", email, err)
		}
		res.Sent++
		if onSent != nil {
			onSent(email)
		}

		if sendDelay > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(sendDelay):
			}
		}
	}

	return res, nil
}
