package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ranna-banna/internal/core/ai/provider"
	"ranna-banna/internal/infrastructure/config"
	"ranna-banna/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client OpenRouter chat completions client. It only generates text; images stay on Gemini.
type Client struct {
	client    *resty.Client
	model     string
	maxTokens int
}

var _ provider.TextGenerator = (*Client)(nil)

// Message chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request chat completions request
type Request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat structured output constraint
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema named schema wrapper
type JSONSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

// Response chat completions response
type Response struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewClient creates an OpenRouter client from config
func NewClient(cfg *config.OpenRouterConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", "https://ranna-banna.app").
		SetHeader("X-Title", "Ranna Banna")

	return &Client{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// GenerateStructuredText sends the prompt with a json_schema response format and returns the message content
func (c *Client) GenerateStructuredText(ctx context.Context, req *provider.StructuredRequest) (string, error) {
	model := c.model
	if model == "" {
		model = req.Model
	}

	body := &Request{
		Model:     model,
		MaxTokens: c.maxTokens,
		Messages: []Message{
			{Role: "system", Content: req.SystemInstruction},
			{Role: "user", Content: req.Prompt},
		},
	}
	if req.Schema != nil {
		body.ResponseFormat = &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:   schemaName(req.Operation),
				Strict: true,
				Schema: ToJSONSchema(req.Schema),
			},
		}
	}

	common.LogInfo("Sending request to OpenRouter",
		zap.String("model", model),
		zap.String("operation", req.Operation),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		sanitized := sanitizeResponse(resp.Body())
		common.LogError("OpenRouter returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", model),
			zap.String("response", sanitized),
		)
		return "", fmt.Errorf("OpenRouter API error (status %d): %s", resp.StatusCode(), sanitized)
	}

	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}
	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in OpenRouter response")
	}

	common.LogDebug("OpenRouter response received",
		zap.String("model", model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return content, nil
}

// ToJSONSchema converts a genai schema into a plain JSON Schema document
func ToJSONSchema(s *genai.Schema) map[string]interface{} {
	if s == nil {
		return nil
	}
	out := map[string]interface{}{
		"type": strings.ToLower(string(s.Type)),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = ToJSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = ToJSONSchema(prop)
		}
		out["properties"] = props
		out["additionalProperties"] = false
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

func schemaName(operation string) string {
	if operation == "" {
		return "response"
	}
	return strings.NewReplacer(" ", "_", "-", "_").Replace(operation)
}

// sanitizeResponse strips image payloads from a body before it is logged
func sanitizeResponse(body []byte) string {
	text := string(body)
	if strings.Contains(text, "data:image/") {
		return "[IMAGE_DATA_REMOVED]"
	}
	if len(body) > 100 && strings.Contains(text, "base64") {
		return "[BASE64_DATA_REMOVED]"
	}
	if len(text) > 2000 {
		return text[:2000] + "...[TRUNCATED]"
	}
	return text
}
