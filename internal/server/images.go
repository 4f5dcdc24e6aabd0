package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"prompt-party/internal/config"
)

// imageGenerator is the external generation collaborator: one image per
// call, no retry. A failed call is terminal for that request.
type imageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type imageClient struct {
	apiKey string
	apiURL string
	model  string
	size   string
	client *http.Client
}

func newImageClient(cfg config.Config) *imageClient {
	return &imageClient{
		apiKey: cfg.ImageAPIKey,
		apiURL: cfg.ImageAPIURL,
		model:  cfg.ImageModel,
		size:   cfg.ImageSize,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type imageGenRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageGenResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *imageClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", fmt.Errorf("image API key is not configured")
	}
	payload, err := json.Marshal(imageGenRequest{
		Model:  c.model,
		Prompt: prompt,
		N:      1,
		Size:   c.size,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build image request")
	}

	reqCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build image request")
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach image provider")
	}
	defer resp.Body.Close()

	var parsed imageGenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse image response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("image provider error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("image request failed (%d)", resp.StatusCode)
	}
	if len(parsed.Data) == 0 || strings.TrimSpace(parsed.Data[0].URL) == "" {
		return "", fmt.Errorf("image provider returned no image")
	}
	return parsed.Data[0].URL, nil
}
