package campaign

// RenderMessage assembles the outgoing HTML document. Content is
// operator-supplied HTML and goes out verbatim, unescaped.
func RenderMessage(greetingHTML, bodyHTML, signatureHTML string) string {
	return greetingHTML + "<br/>" + bodyHTML + signatureHTML
}
