package search

import (
	"fmt"

	"prospector-engine/internal/config"
)

// Query is one generated search string, tagged with the category it came
// from so leads can carry a source label.
type Query struct {
	Category string
	Text     string
}

// BuildQueries makes one query per category, scoped to .com/.net/.org so
// providers pre-filter toward business sites.
func BuildQueries(location, radiusPhrase string, cats []config.Category) []Query {
	out := make([]Query, 0, len(cats))
	for _, c := range cats {
		if c.Query == "" {
			continue
		}
		out = append(out, Query{
			Category: c.Name,
			Text: fmt.Sprintf(`%s %q site:.com OR site:.net OR site:.org %q`,
				c.Query, location, radiusPhrase),
		})
	}
	return out
}
