package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const gtxEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleRemote looks up glosses through the public gtx endpoint. No API
// key is needed; responses are best-effort.
type GoogleRemote struct {
	client *http.Client
}

// NewGoogleRemote creates the HTTP-backed remote.
func NewGoogleRemote() *GoogleRemote {
	return &GoogleRemote{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleRemote) Lookup(ctx context.Context, word string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "no")
	params.Set("tl", "en")
	params.Set("dt", "t")
	params.Set("q", word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gtxEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate request: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	return parseGtx(body)
}

// parseGtx extracts the translated text from the gtx nested-array
// payload: [[["gloss","source",...],...],...].
func parseGtx(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return "", fmt.Errorf("unexpected translate payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translate payload")
	}

	var out strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var text string
		if err := json.Unmarshal(seg[0], &text); err != nil {
			continue
		}
		out.WriteString(text)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("empty translation")
	}
	return out.String(), nil
}
