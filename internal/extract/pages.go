package extract

import "strings"

// CandidatePages lists the pages most likely to carry contact details, in
// probe order. The base page goes first; probing stops at the first page
// that yields an email.
func CandidatePages(base string) []string {
	root := strings.TrimRight(base, "/")
	return []string{
		base,
		root + "/contact",
		root + "/contact-us",
		root + "/about",
		root + "/team",
	}
}
