// Package chat relays diary conversations to an OpenRouter-compatible
// chat-completion endpoint. The provider is an opaque collaborator: messages
// in, one text reply out.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"day-diary/models"
)

const systemPrompt = "You are Nemo, a kind and creative diary companion who can discuss emotions, events, and reflections naturally."

const quotePrompt = `Generate a single short, poetic, and uplifting quote.
It should sound natural and emotionally deep, like something from a diary or journal.
Just return the quote itself, no extra text.`

// FallbackQuote is returned whenever the provider fails.
const FallbackQuote = "Every day is a blank page waiting for your story."

type Client struct {
	apiKey      string
	model       string
	visionModel string
	base        string
	http        *http.Client
}

// NewClient builds a relay client. model handles text; visionModel is chosen
// whenever a message carries an image attachment.
func NewClient(apiKey, model, visionModel string) *Client {
	return &Client{
		apiKey:      apiKey,
		model:       model,
		visionModel: visionModel,
		base:        "https://openrouter.ai/api/v1",
		http:        &http.Client{Timeout: 60 * time.Second},
	}
}

// SetBaseURL overrides the provider endpoint, for tests.
func (c *Client) SetBaseURL(base string) {
	c.base = strings.TrimRight(base, "/")
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type completionRequest struct {
	Model     string        `json:"model"`
	Messages  []wireMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// hasImage reports whether the latest user message carries an image.
func hasImage(messages []models.ChatMessage) bool {
	if len(messages) == 0 {
		return false
	}
	last := messages[len(messages)-1]
	for _, m := range last.Media {
		if strings.HasPrefix(m.Type, "image/") {
			return true
		}
	}
	return false
}

// PickModel returns the model that will handle the conversation.
func (c *Client) PickModel(messages []models.ChatMessage) string {
	if hasImage(messages) {
		return c.visionModel
	}
	return c.model
}

// Complete relays the conversation and returns the reply plus the model used.
func (c *Client) Complete(ctx context.Context, messages []models.ChatMessage) (string, string, error) {
	model := c.PickModel(messages)

	wire := make([]wireMessage, 0, len(messages)+1)
	wire = append(wire, wireMessage{Role: "system", Content: systemPrompt})
	for _, m := range messages {
		if m.Role == "user" && len(m.Media) > 0 {
			// Attachments become structured content parts; image URLs go to
			// the vision model as image_url entries.
			parts := make([]contentPart, 0, len(m.Media)+1)
			for _, media := range m.Media {
				if strings.HasPrefix(media.Type, "image/") {
					parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: media.URL}})
				} else {
					parts = append(parts, contentPart{Type: "text", Text: media.URL})
				}
			}
			parts = append(parts, contentPart{Type: "text", Text: m.Content})
			wire = append(wire, wireMessage{Role: m.Role, Content: parts})
			continue
		}
		wire = append(wire, wireMessage{Role: m.Role, Content: m.Content})
	}

	reply, err := c.complete(ctx, completionRequest{Model: model, Messages: wire, MaxTokens: 600})
	if err != nil {
		return "", model, err
	}
	return reply, model, nil
}

// Quote asks the provider for one short uplifting line, degrading to
// FallbackQuote on any failure.
func (c *Client) Quote(ctx context.Context) string {
	reply, err := c.complete(ctx, completionRequest{
		Model: c.model,
		Messages: []wireMessage{
			{Role: "user", Content: quotePrompt},
		},
		MaxTokens: 80,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		return FallbackQuote
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), `"`))
}

func (c *Client) complete(ctx context.Context, req completionRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("chat provider error: status %d: %s", resp.StatusCode, string(body))
	}

	var cr completionResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("chat provider error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
