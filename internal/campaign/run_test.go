package campaign_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prospector-engine/internal/campaign"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/leads"
	"prospector-engine/internal/store"
)

type fakeSender struct {
	sent    []campaign.Message
	failFor map[string]error
}

func (f *fakeSender) Send(ctx context.Context, msg campaign.Message) error {
	if err := f.failFor[msg.To]; err != nil {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func storeWith(emails ...string) *leads.Store {
	st := leads.NewStore()
	for _, e := range emails {
		st.Upsert("Co", e, "", "", "bing")
	}
	return st
}

var testMsg = domain.CampaignMessage{
	Subject:       "Hello",
	GreetingHTML:  "Dear Team,",
	BodyHTML:      "<p>Hi</p>",
	SignatureHTML: "<p>Bye</p>",
}

func TestRunStopsAtDailyCap(t *testing.T) {
	db := testDB(t)
	st := storeWith("a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com")
	sender := &fakeSender{}

	res, err := campaign.Run(context.Background(), db.Pool, st, sender, testMsg, 3, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 3, res.Sent)
	require.Len(t, sender.sent, 3)
	require.Equal(t, "a@x.com", sender.sent[0].To)
	require.Equal(t, "c@x.com", sender.sent[2].To)
}

func TestRunCapCountsLedgerSinceMidnight(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// two already sent today leaves room for one more under cap 3
	require.NoError(t, store.RecordSend(ctx, db.Pool, "old1@x.com", "Hello"))
	require.NoError(t, store.RecordSend(ctx, db.Pool, "old2@x.com", "Hello"))

	st := storeWith("a@x.com", "b@x.com")
	sender := &fakeSender{}

	res, err := campaign.Run(ctx, db.Pool, st, sender, testMsg, 3, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)

	// cap exhausted: the next run sends nothing
	res, err = campaign.Run(ctx, db.Pool, st, sender, testMsg, 3, 0, nil)
	require.NoError(t, err)
	require.Zero(t, res.Sent)
}

func TestRunSkipsFailedRecipient(t *testing.T) {
	db := testDB(t)
	st := storeWith("a@x.com", "bad@x.com", "c@x.com")
	sender := &fakeSender{failFor: map[string]error{"bad@x.com": errors.New("mailbox full")}}

	res, err := campaign.Run(context.Background(), db.Pool, st, sender, testMsg, 10, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Sent)
	require.Equal(t, 1, res.Failed)

	// failures never hit the ledger
	n, err := store.CountSentSince(context.Background(), db.Pool, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestRunSkipsSuppressed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, err := store.Suppress(ctx, db.Pool, "opted-out@x.com", "reply")
	require.NoError(t, err)

	st := storeWith("a@x.com", "opted-out@x.com", "c@x.com")
	sender := &fakeSender{}

	res, err := campaign.Run(ctx, db.Pool, st, sender, testMsg, 10, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Sent)
	require.Equal(t, 1, res.Suppressed)
}

func TestRunRendersMessageOnce(t *testing.T) {
	db := testDB(t)
	st := storeWith("a@x.com")
	sender := &fakeSender{}

	var notified []string
	_, err := campaign.Run(context.Background(), db.Pool, st, sender, testMsg, 10, 0, func(email string) {
		notified = append(notified, email)
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com"}, notified)
	require.Equal(t, "Dear Team,<br/><p>Hi</p><p>Bye</p>", sender.sent[0].HTML)
	require.Equal(t, "Hello", sender.sent[0].Subject)
}

func TestRenderMessage(t *testing.T) {
	got := campaign.RenderMessage("Hi,", "<p>Body</p>", "<p>Sig</p>")
	require.Equal(t, "Hi,<br/><p>Body</p><p>Sig</p>", got)
}
