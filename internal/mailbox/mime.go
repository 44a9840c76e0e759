package mailbox

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

const maxPartBytes = 6 << 20

// bodyText flattens an RFC822 message to searchable text: every text/*
// part, transfer-decoded, concatenated. Unparseable input comes back as-is.
func bodyText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}

	body, _ := io.ReadAll(io.LimitReader(msg.Body, maxPartBytes))
	return textParts(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), body)
}

func textParts(contentType, cte string, body []byte) string {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(decodeTransferEncoding(body, cte))
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return string(decodeTransferEncoding(body, cte))
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)

		var sb strings.Builder
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			b, _ := io.ReadAll(io.LimitReader(p, maxPartBytes))
			sb.WriteString(textParts(
				p.Header.Get("Content-Type"),
				p.Header.Get("Content-Transfer-Encoding"),
				b,
			))
			sb.WriteString("\n")
		}
		return sb.String()
	}

	if !strings.HasPrefix(mediaType, "text/") {
		return ""
	}
	return string(decodeTransferEncoding(body, cte))
}

func decodeTransferEncoding(b []byte, cte string) []byte {
	switch strings.ToLower(strings.TrimSpace(cte)) {
	case "base64":
		dec := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, maxPartBytes))
		return out
	case "quoted-printable":
		dec := quotedprintable.NewReader(bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, maxPartBytes))
		return out
	default:
		return b
	}
}

// senderAddr pulls the bare address out of a From value; falls back to the
// raw string when it won't parse.
func senderAddr(from string) string {
	from = strings.TrimSpace(from)
	if from == "" {
		return ""
	}
	if a, err := mail.ParseAddress(from); err == nil {
		return a.Address
	}
	return from
}
