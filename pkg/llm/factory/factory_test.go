package factory

import (
	"testing"

	"hcp-crm-be/pkg/llm/groq"
	"hcp-crm-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		provider string
		check    func(t *testing.T, p any)
	}{
		{provider: "groq", check: func(t *testing.T, p any) { assert.IsType(t, &groq.Provider{}, p) }},
		{provider: "", check: func(t *testing.T, p any) { assert.IsType(t, &groq.Provider{}, p) }},
		{provider: "HuggingFace", check: func(t *testing.T, p any) { assert.IsType(t, &groq.Provider{}, p) }},
		{
			provider: "ollama",
			check: func(t *testing.T, p any) {
				require.IsType(t, &ollama.OllamaProvider{}, p)
				assert.Equal(t, ollama.DefaultBaseURL, p.(*ollama.OllamaProvider).BaseURL)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := NewLLMProvider(tt.provider, "model", "", "key")
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestNewLLMProvider_Unsupported(t *testing.T) {
	_, err := NewLLMProvider("openai-legacy", "m", "", "")
	assert.Error(t, err)
}
