// Package vision asks an external chat-completions endpoint which foods a
// meal photo shows. The rest of the application only sees Identifier.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const prompt = "List only the foods you can clearly identify in this image, separated by commas. " +
	"Example: \"Apple, Whole wheat bread, Scrambled eggs, Coffee\". Do not add explanations."

var (
	// ErrNotConfigured is returned when no endpoint was configured.
	ErrNotConfigured = errors.New("food identification is not configured")
	// ErrEmptyResponse is returned when the endpoint answered without choices.
	ErrEmptyResponse = errors.New("food identification returned no answer")
)

// Identifier turns a photo into an ordered list of food names.
type Identifier interface {
	Identify(ctx context.Context, imagePath string) ([]string, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
	model    string
	logger   *zap.Logger
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient returns a client posting to endpoint with a bearer apiKey.
func NewClient(endpoint, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:     client,
		endpoint: endpoint,
		model:    model,
		logger:   logger,
	}
}

// Identify uploads the image inline and returns the cleaned food list.
func (c *Client) Identify(ctx context.Context, imagePath string) ([]string, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	dataURL := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)

	request := completionRequest{
		Model: c.model,
		Messages: []message{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
		MaxTokens:   300,
		Temperature: 0.1,
	}

	c.logger.Info("calling food identification",
		zap.String("image", imagePath),
		zap.String("model", c.model),
		zap.Int("image_bytes", len(data)),
	)

	var response completionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post(c.endpoint)
	if err != nil {
		c.logger.Error("food identification call failed", zap.Error(err))
		return nil, fmt.Errorf("call food identification: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("food identification returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return nil, fmt.Errorf("food identification: unexpected status %d", resp.StatusCode())
	}
	if len(response.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	foods := CleanFoods(response.Choices[0].Message.Content)
	c.logger.Info("identified foods", zap.Int("count", len(foods)))
	return foods, nil
}

// CleanFoods splits a comma-separated answer into trimmed, non-empty names.
func CleanFoods(content string) []string {
	var foods []string
	for _, part := range strings.Split(content, ",") {
		food := strings.Trim(strings.TrimSpace(part), "\"'.")
		food = strings.TrimSpace(food)
		if food == "" {
			continue
		}
		foods = append(foods, food)
	}
	return foods
}
