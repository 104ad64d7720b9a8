package omi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.omi.me"

// Memory is one recorded conversation block from the wearable.
type Memory struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Transcript string    `json:"transcript"`
}

// Client fetches recent memories from the Omi developer API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient() *Client {
	baseURL := os.Getenv("OMI_API_BASE")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  os.Getenv("OMI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) RecentMemories(ctx context.Context, limit int) ([]Memory, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing OMI_API_KEY")
	}
	if limit <= 0 {
		limit = 50
	}

	url := fmt.Sprintf("%s/v1/dev/user/memories?limit=%d", c.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omi api error %d: %s", resp.StatusCode, string(raw))
	}

	var memories []Memory
	if err := json.Unmarshal(raw, &memories); err != nil {
		return nil, err
	}
	return memories, nil
}
