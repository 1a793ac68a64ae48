// Package openai provides a PoemGenerator backed by any OpenAI-compatible
// chat completion endpoint, including a local Ollama server.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"text/template"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/ports"
	"github.com/ersonp/legends-codex/internal/infrastructure/config"
)

// ollamaAPIKey is sent to Ollama, which ignores it but expects a bearer token.
const ollamaAPIKey = "ollama"

const (
	defaultMaxTokens   = 300
	defaultTemperature = 0.7
)

var poemPrompt = template.Must(template.New("poem").Parse(`
You are {{.Persona}}.
Below is a poetic form from that world. Write a single poem that follows its rules exactly.
Use the poem title if you can.

RULES:
- Follow the structure, meter, and rules described.
- Use metaphor, vivid imagery, and emotional tone.
- If the form is ribald, sacred, or sensual, match its spirit.
- ONLY output the poem: no title, no author, no explanations, no annotations.
- Do NOT include any metrical markings like (U/E), (EE), EV 1, or (E/E-E-E).
- Do NOT add editorial notes, line numbers, or performance directions.
- The output should be clean, flowing stanzas, as if recited aloud.
- Do NOT include any XML or HTML tags, just plain text.
- Do NOT use any modern slang or references, keep it timeless.


POETIC FORM DESCRIPTION:
{{.FormDescription}}

TITLE: "{{.Title}}"
AUTHOR: {{.Author}}

Think step by step but only output the final poem
Now write the poem:
`))

// Client implements ports.PoemGenerator using the chat completion API.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewClient creates a new generation client for the configured provider.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	var clientCfg openai.ClientConfig

	switch cfg.Provider {
	case config.ProviderOllama, "":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = ollamaAPIKey
		}
		clientCfg = openai.DefaultConfig(apiKey)
		clientCfg.BaseURL = config.DefaultOllamaURL
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("OpenAI API key is required")
		}
		clientCfg = openai.DefaultConfig(cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}

	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}

	maxTokens := defaultMaxTokens
	if cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}
	temperature := float32(defaultTemperature)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Generate asks the model for one poem in the requested form.
func (c *Client) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}

	// go-openai drops a zero temperature from the request, which lets the
	// server substitute its own default.
	temperature := c.temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", c.model, err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

// BuildPrompt renders the generation prompt. Empty fields fall back to the
// anonymous poet defaults.
func BuildPrompt(req ports.GenerationRequest) (string, error) {
	if req.Title == "" {
		req.Title = "Untitled"
	}
	if req.Author == "" {
		req.Author = entities.UnknownPoet
	}
	if req.Persona == "" {
		req.Persona = entities.DefaultPersona
	}

	var buf bytes.Buffer
	if err := poemPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
