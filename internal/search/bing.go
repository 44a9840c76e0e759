package search

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"prospector-engine/internal/httpx"
)

const bingEndpoint = "https://api.bing.microsoft.com/v7.0/search"

// Bing queries the Bing Web Search API with a fixed subscription-key
// header.
type Bing struct {
	Client *httpx.Client
	Key    string
}

func (b *Bing) Name() string { return "bing" }

func (b *Bing) Search(ctx context.Context, query string, count int) ([]string, error) {
	if b.Key == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("mkt", "en-US")
	params.Set("count", strconv.Itoa(count))

	hdr := http.Header{}
	hdr.Set("Ocp-Apim-Subscription-Key", b.Key)

	body, err := b.Client.Get(ctx, bingEndpoint+"?"+params.Encode(), hdr)
	if err != nil {
		return nil, err
	}

	return filterBusinessSites(parseURLs(body), count), nil
}
