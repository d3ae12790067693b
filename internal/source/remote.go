package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"qbr-dash/internal/qbr"
)

const defaultFetchTimeout = 30 * time.Second

// FetchCSV downloads a CSV dataset from url. A nil client gets a default
// client with a timeout. token, when set, is sent as a bearer token.
func FetchCSV(ctx context.Context, client *http.Client, url, token string) ([]qbr.Record, error) {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building dataset request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset: unexpected status %s", resp.Status)
	}

	records, err := LoadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return records, nil
}
