package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseContactPage(t *testing.T) {
	html := []byte(`<html>
<head><title>Acme Co | Flooring &amp; More</title></head>
<body>
<script>var tracker = "bot@tracker.js";</script>
<h1>Acme Co</h1>
<p>Reach us at info@acme.com or call (305) 555-1234.</p>
</body></html>`)

	in := Parse(html)
	require.Equal(t, "Acme Co", in.Company)
	require.Equal(t, "info@acme.com", in.Email)
	require.Equal(t, "(305) 555-1234", in.Phone)
}

func TestParseSkipsAssetEmails(t *testing.T) {
	html := []byte(`<html><body>
<p>logo@2x.png is our retina logo</p>
<p>sales@acme.net</p>
</body></html>`)

	in := Parse(html)
	require.Equal(t, "sales@acme.net", in.Email)
}

func TestParseCompanyFromH1WhenNoTitle(t *testing.T) {
	html := []byte(`<html><body><h1>  Builders   Guild </h1></body></html>`)
	in := Parse(html)
	require.Equal(t, "Builders Guild", in.Company)
}

func TestParseTitleDashSplit(t *testing.T) {
	html := []byte(`<html><head><title>Acme Co – Miami General Contractor</title></head><body></body></html>`)
	in := Parse(html)
	require.Equal(t, "Acme Co", in.Company)
}

func TestParseNothingFound(t *testing.T) {
	in := Parse([]byte(`<html><body><p>no contact details here</p></body></html>`))
	require.Equal(t, Info{}, in)
}

func TestCandidatePagesOrder(t *testing.T) {
	got := CandidatePages("https://acme.com/")
	require.Equal(t, []string{
		"https://acme.com/",
		"https://acme.com/contact",
		"https://acme.com/contact-us",
		"https://acme.com/about",
		"https://acme.com/team",
	}, got)
}
