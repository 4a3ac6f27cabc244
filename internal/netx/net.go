// Package netx holds small HTTP client helpers.
package netx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %s; body: %s", e.Status, e.Body)
}

// GetJSON performs a GET with the given headers and decodes a 200 response
// body into dst.
func GetJSON(ctx context.Context, client *http.Client, url string, header http.Header, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Status: resp.Status, Body: string(b)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
