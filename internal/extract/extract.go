package extract

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"prospector-engine/internal/httpx"
)

var (
	EmailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`\+?1?[\s\-\.\(]?\d{3}[\)\s\-\.\)]?\s?\d{3}\s?[\-\.\s]?\d{4}`)
)

// Asset references like sprite@2x.png match the email pattern; their
// "domain" ends in a file extension instead of a TLD.
var badEmailSuffixes = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".css", ".js",
}

const maxCompanyLen = 120

// Info is what a single page yields. Empty fields mean "not found";
// extraction never fails harder than that.
type Info struct {
	Company string
	Email   string
	Phone   string
}

type Extractor struct {
	Client *httpx.Client
}

// Extract fetches url and pulls company name, email and phone out of the
// visible text. Any fetch or parse failure degrades to an empty Info.
func (e *Extractor) Extract(ctx context.Context, url string) Info {
	body, err := e.Client.Get(ctx, url, nil)
	if err != nil {
		return Info{}
	}
	return Parse(body)
}

// Parse runs the extraction rules over raw HTML.
func Parse(html []byte) Info {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Info{}
	}

	doc.Find("script, style, noscript").Remove()
	text := cleanText(doc.Text())

	var in Info
	in.Email = firstEmail(text)
	in.Phone = strings.TrimSpace(phoneRe.FindString(text))
	in.Company = companyName(doc)
	return in
}

func firstEmail(text string) string {
	for _, m := range EmailRe.FindAllString(text, -1) {
		if looksLikeAsset(m) {
			continue
		}
		return m
	}
	return ""
}

func looksLikeAsset(email string) bool {
	l := strings.ToLower(email)
	for _, suf := range badEmailSuffixes {
		if strings.HasSuffix(l, suf) {
			return true
		}
	}
	return false
}

func companyName(doc *goquery.Document) string {
	if t := cleanText(doc.Find("title").First().Text()); t != "" {
		t = strings.SplitN(t, " | ", 2)[0]
		t = strings.SplitN(t, " – ", 2)[0]
		if t = strings.TrimSpace(t); t != "" {
			return clip(t, maxCompanyLen)
		}
	}
	if h1 := cleanText(doc.Find("h1").First().Text()); h1 != "" {
		return clip(h1, maxCompanyLen)
	}
	return ""
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
