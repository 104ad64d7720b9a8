package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultPokeEndpoint = "https://api.poke.com/v1/notify"

type PokeClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewPokeClient(apiKey, endpoint string) *PokeClient {
	if endpoint == "" {
		endpoint = defaultPokeEndpoint
	}
	return &PokeClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *PokeClient) Notify(ctx context.Context, title, message string) error {
	payload := map[string]string{
		"title":    title,
		"message":  message,
		"priority": "normal",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.endpoint,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("poke api error %d: %s", resp.StatusCode, string(raw))
	}

	return nil
}
