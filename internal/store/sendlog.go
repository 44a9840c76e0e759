package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// RecordSend logs one successful delivery.
func RecordSend(ctx context.Context, db *sql.DB, email, subject string) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO send_log(email, subject, sent_at)
VALUES(?,?,?);`,
		strings.ToLower(strings.TrimSpace(email)),
		subject,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// CountSentSince counts deliveries recorded at or after t. The campaign
// loop uses midnight local time to enforce the daily cap across restarts.
func CountSentSince(ctx context.Context, db *sql.DB, t time.Time) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM send_log WHERE sent_at >= ?;`,
		t.UTC().Format(time.RFC3339),
	).Scan(&n)
	return n, err
}

// CleanupOldSends drops ledger rows older than three months.
func CleanupOldSends(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM send_log
WHERE sent_at < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
