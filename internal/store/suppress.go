package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type Suppression struct {
	Email   string `json:"email"`
	Reason  string `json:"reason"`
	AddedAt string `json:"added_at"`
}

// Suppress adds email to the do-not-send list. Re-suppressing is a no-op.
func Suppress(ctx context.Context, db *sql.DB, email, reason string) (added bool, err error) {
	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO suppressions(email, reason, added_at)
VALUES(?,?,?);`,
		strings.ToLower(strings.TrimSpace(email)),
		reason,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func IsSuppressed(ctx context.Context, db *sql.DB, email string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `
SELECT 1 FROM suppressions WHERE email = ? LIMIT 1;`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func ListSuppressions(ctx context.Context, db *sql.DB) ([]Suppression, error) {
	rows, err := db.QueryContext(ctx, `
SELECT email, reason, added_at
FROM suppressions
ORDER BY added_at;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Suppression
	for rows.Next() {
		var s Suppression
		if err := rows.Scan(&s.Email, &s.Reason, &s.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
