package search

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"prospector-engine/internal/httpx"
)

// SERP is the generic adapter for JSON search endpoints. Auth is the
// configured key sent in a named header, a named query parameter, or both;
// with neither configured the key is simply not transmitted.
type SERP struct {
	Client     *httpx.Client
	BaseURL    string
	Key        string
	Method     string // GET | POST
	AuthHeader string
	KeyParam   string
}

func (s *SERP) Name() string { return "serp" }

func (s *SERP) Search(ctx context.Context, query string, count int) ([]string, error) {
	if s.BaseURL == "" || s.Key == "" {
		return nil, nil
	}

	hdr := http.Header{}
	if s.AuthHeader != "" {
		hdr.Set(s.AuthHeader, s.Key)
	}

	var body []byte
	var err error

	if s.Method == http.MethodPost {
		payload := map[string]any{"q": query, "count": count}
		if s.KeyParam != "" {
			payload[s.KeyParam] = s.Key
		}
		body, err = s.Client.PostJSON(ctx, s.BaseURL, hdr, payload)
	} else {
		params := url.Values{}
		params.Set("q", query)
		params.Set("count", strconv.Itoa(count))
		if s.KeyParam != "" {
			params.Set(s.KeyParam, s.Key)
		}
		body, err = s.Client.Get(ctx, s.BaseURL+"?"+params.Encode(), hdr)
	}
	if err != nil {
		return nil, err
	}

	return filterBusinessSites(parseURLs(body), count), nil
}
