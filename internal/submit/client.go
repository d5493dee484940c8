// Package submit sends finished form documents to the backend endpoint.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inkform/internal/form"
)

const submitPath = "/submissions"

// Client posts documents as JSON. Any 2xx response is success; transport
// errors and every other status are one uniform failure.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the given base URL ("https://host[:port]").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Submit(ctx context.Context, doc form.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post form: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("submission rejected: %s", resp.Status)
	}
	return nil
}
