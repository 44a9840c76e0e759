package domain

// Lead is one scraped or imported business contact. Email is the unique
// key, compared case-insensitively; rows are never mutated after insert.
type Lead struct {
	Company string `json:"company"`
	Email   string `json:"email"`
	Website string `json:"website"`
	Phone   string `json:"phone"`
	Source  string `json:"source"` // bing/serp/import
}
