package search

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Providers return one of three known JSON shapes:
//
//   { "webPages": { "value": [ { "url": ... }, ... ] } }
//   { "results": [ { "url" | "link": ... }, ... ] }
//   [ "https://...", { "url" | "link": ... }, ... ]
//
// Anything else is unrecognized and decodes to no URLs. Malformed JSON is
// "no data found", never an error.

type resultItem struct {
	URL  string `json:"url"`
	Link string `json:"link"`
}

func (it resultItem) pick() string {
	if u := strings.TrimSpace(it.URL); u != "" {
		return u
	}
	return strings.TrimSpace(it.Link)
}

type objectResponse struct {
	WebPages *struct {
		Value []resultItem `json:"value"`
	} `json:"webPages"`
	Results []resultItem `json:"results"`
}

func parseURLs(data []byte) []string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '{':
		var obj objectResponse
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		switch {
		case obj.WebPages != nil:
			return itemURLs(obj.WebPages.Value)
		case obj.Results != nil:
			return itemURLs(obj.Results)
		default:
			return nil
		}

	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		var out []string
		for _, el := range raw {
			var s string
			if err := json.Unmarshal(el, &s); err == nil {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
				continue
			}
			var it resultItem
			if err := json.Unmarshal(el, &it); err == nil {
				if u := it.pick(); u != "" {
					out = append(out, u)
				}
			}
		}
		return out

	default:
		return nil
	}
}

func itemURLs(items []resultItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if u := it.pick(); u != "" {
			out = append(out, u)
		}
	}
	return out
}
