package openai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/ports"
	"github.com/ersonp/legends-codex/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:    "ollama without key",
			cfg:     config.LLMConfig{Provider: config.ProviderOllama, Model: "phi3"},
			wantErr: false,
		},
		{
			name:    "empty provider means ollama",
			cfg:     config.LLMConfig{Model: "phi3"},
			wantErr: false,
		},
		{
			name:    "openai with key",
			cfg:     config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "openai missing key",
			cfg:     config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"},
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name:    "missing model",
			cfg:     config.LLMConfig{Provider: config.ProviderOllama},
			wantErr: true,
			errMsg:  "model is required",
		},
		{
			name:    "unknown provider",
			cfg:     config.LLMConfig{Provider: "bard", Model: "x"},
			wantErr: true,
			errMsg:  "unknown llm provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
				assert.Equal(t, tt.cfg.Model, client.Model())
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(config.LLMConfig{Model: "phi3"})
	require.NoError(t, err)

	assert.Equal(t, defaultMaxTokens, client.maxTokens)
	assert.InDelta(t, defaultTemperature, client.temperature, 0.0001)
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(ports.GenerationRequest{
		FormDescription: "A sombre verse of three lines.",
		Title:           "The Deep Song",
		Author:          "Urist",
		Persona:         "Urist, a dwarf poet",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "You are Urist, a dwarf poet.")
	assert.Contains(t, prompt, "POETIC FORM DESCRIPTION:\nA sombre verse of three lines.")
	assert.Contains(t, prompt, `TITLE: "The Deep Song"`)
	assert.Contains(t, prompt, "AUTHOR: Urist")
	assert.Contains(t, prompt, "Now write the poem:")
}

func TestBuildPrompt_Defaults(t *testing.T) {
	prompt, err := BuildPrompt(ports.GenerationRequest{FormDescription: "free verse"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "You are "+entities.DefaultPersona+".")
	assert.Contains(t, prompt, `TITLE: "Untitled"`)
	assert.Contains(t, prompt, "AUTHOR: "+entities.UnknownPoet)
}

func TestBuildPrompt_NoEscaping(t *testing.T) {
	prompt, err := BuildPrompt(ports.GenerationRequest{
		FormDescription: "lines <of> & stone",
		Title:           "Ode",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "lines <of> & stone")
}

type chatRequest struct {
	Model       string   `json:"model"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, choices []map[string]any, got *chatRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   "phi3",
			"choices": choices,
		}))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Generate(t *testing.T) {
	var got chatRequest
	server := newChatServer(t, []map[string]any{
		{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": "Stone remembers\nwhat the river forgot."},
		},
	}, &got)

	client, err := NewClient(config.LLMConfig{
		Provider:    config.ProviderOllama,
		Model:       "phi3",
		BaseURL:     server.URL + "/v1",
		MaxTokens:   120,
		Temperature: config.Float32(0.5),
	})
	require.NoError(t, err)

	poem, err := client.Generate(t.Context(), ports.GenerationRequest{
		FormDescription: "two lines",
		Title:           "River",
		Author:          "Kib",
	})
	require.NoError(t, err)

	assert.Equal(t, "Stone remembers\nwhat the river forgot.", poem)
	assert.Equal(t, "phi3", got.Model)
	assert.Equal(t, 120, got.MaxTokens)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.5, *got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, `TITLE: "River"`)
}

func TestClient_Generate_ZeroTemperature(t *testing.T) {
	var got chatRequest
	server := newChatServer(t, []map[string]any{
		{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": "Still water."},
		},
	}, &got)

	client, err := NewClient(config.LLMConfig{
		Model:       "phi3",
		BaseURL:     server.URL + "/v1",
		Temperature: config.Float32(0),
	})
	require.NoError(t, err)
	assert.Zero(t, client.temperature)

	_, err = client.Generate(t.Context(), ports.GenerationRequest{Title: "Pond"})
	require.NoError(t, err)

	require.NotNil(t, got.Temperature, "zero temperature is still sent")
	assert.InDelta(t, 0, *got.Temperature, 0.0001)
}

func TestClient_Generate_NoChoices(t *testing.T) {
	server := newChatServer(t, []map[string]any{}, nil)

	client, err := NewClient(config.LLMConfig{Model: "phi3", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = client.Generate(t.Context(), ports.GenerationRequest{Title: "Silence"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response")
}

func TestClient_Generate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"model not found"}}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(config.LLMConfig{Model: "phi3", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = client.Generate(t.Context(), ports.GenerationRequest{Title: "Lost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling phi3")
}
