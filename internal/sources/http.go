// Package sources fetches public, read-only data from GitHub, a Telegram
// channel preview page and PyPI. Every fetch is best-effort.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	userAgent    = "folio/1.0 (+https://github.com/Zachkp/folio)"
	maxBodyBytes = 2 << 20
)

var ErrUnexpectedStatus = errors.New("unexpected status")

func get(ctx context.Context, client *http.Client, url, accept string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, v any) error {
	body, err := get(ctx, client, url, "application/json", header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}
