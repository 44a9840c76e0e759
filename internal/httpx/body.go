package httpx

import (
	"io"
	"net/http"
)

// Pages and SERP payloads are small; anything past this is junk.
const maxBodyBytes = 4 << 20

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
