package leads

import (
	"encoding/csv"
	"io"
	"strings"

	"prospector-engine/internal/extract"
)

var csvHeader = []string{"Company", "Email", "Website", "Phone", "Source"}

const maxCompanyLen = 120

// ExportCSV writes the table in store order with the canonical header.
func (s *Store) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, l := range s.Snapshot() {
		if err := cw.Write([]string{l.Company, l.Email, l.Website, l.Phone, l.Source}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads rows into the store with source tag "import". Headers
// are trimmed and title-cased before matching, so " email " still maps to
// Email; missing columns default to empty. Rows with an invalid or already
// present email are skipped. Returns the number of rows imported.
func (s *Store) ImportCSV(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, err
	}

	col := map[string]int{}
	for i, h := range header {
		col[titleCase(h)] = i
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	imported := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, err
		}

		email := field(rec, "Email")
		if email == "" || !matchesEmailPattern(email) {
			continue
		}
		if s.Upsert(
			clip(field(rec, "Company"), maxCompanyLen),
			email,
			field(rec, "Website"),
			field(rec, "Phone"),
			"import",
		) {
			imported++
		}
	}
	return imported, nil
}

// matchesEmailPattern requires the email pattern to match from the first
// character, so trailing junk after a valid address still passes but a
// leading prefix does not.
func matchesEmailPattern(email string) bool {
	loc := extract.EmailRe.FindStringIndex(email)
	return loc != nil && loc[0] == 0
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	l := strings.ToLower(s)
	return strings.ToUpper(l[:1]) + l[1:]
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
