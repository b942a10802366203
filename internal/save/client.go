package save

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"questwalk/internal/game"
)

// Client is the HTTP gateway to the remote save store. No caching, no
// concurrency control: concurrent saves under one name last-write-win.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{Endpoint: endpoint}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// List fetches the summaries of every saved session.
func (c *Client) List(ctx context.Context) ([]Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?list=0", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list saves: status %s", resp.Status)
	}
	var out []Summary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return out, nil
}

// Load fetches and parses the session saved under name. Malformed
// numerics fail the load; nothing is constructed from a bad record.
func (c *Client) Load(ctx context.Context, name string) (game.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?load="+url.QueryEscape(name), nil)
	if err != nil {
		return game.Snapshot{}, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("load %q: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return game.Snapshot{}, fmt.Errorf("load %q: status %s", name, resp.Status)
	}
	var wire WireRecord
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return game.Snapshot{}, fmt.Errorf("load %q: %w", name, err)
	}
	rec, err := wire.Record()
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("load %q: %w", name, err)
	}
	return rec.Snapshot(), nil
}

// Save submits the snapshot under name and returns the identifier the
// store assigned.
func (c *Client) Save(ctx context.Context, name string, snap game.Snapshot) (string, error) {
	body, err := json.Marshal(FromSnapshot(name, snap))
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("save %q: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("save %q: status %s", name, resp.Status)
	}
	var out struct {
		ID json.Number `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("save %q: %w", name, err)
	}
	return out.ID.String(), nil
}
