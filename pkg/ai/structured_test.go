package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubTextGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubTextGenerator) GenerateText(_ context.Context, req GenerationRequest) (string, error) {
	s.lastPrompt = req.Prompt
	return s.response, s.err
}

func questionSchema() Schema {
	return Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"question":   map[string]interface{}{"type": "string"},
			"category":   map[string]interface{}{"type": "string"},
			"difficulty": map[string]interface{}{"type": "string", "enum": []string{"easy", "medium", "hard"}},
			"purpose":    map[string]interface{}{"type": "string"},
		},
		"required": []string{"question", "category", "difficulty", "purpose"},
	}
}

func TestParseStructuredResponseDirectJSON(t *testing.T) {
	obj, err := ParseStructuredResponse(`  {"question": "Why?", "count": 2}  `)
	require.NoError(t, err)
	require.Equal(t, "Why?", obj["question"])
	require.Equal(t, float64(2), obj["count"])
}

func TestParseStructuredResponseExtractsEmbeddedObject(t *testing.T) {
	text := `Sure! {"question":"Why?","category":"General","difficulty":"easy","purpose":"warmup"}`

	obj, err := ParseStructuredResponse(text)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"question":   "Why?",
		"category":   "General",
		"difficulty": "easy",
		"purpose":    "warmup",
	}, obj)
}

func TestParseStructuredResponseSpansNewlinesAndFences(t *testing.T) {
	text := "Here you go:\n```json\n{\n  \"questions\": [\n    {\"question\": \"A?\"}\n  ]\n}\n```\nGood luck!"

	obj, err := ParseStructuredResponse(text)
	require.NoError(t, err)
	require.Len(t, obj["questions"], 1)
}

func TestParseStructuredResponseFailures(t *testing.T) {
	cases := map[string]string{
		"no braces":        "I cannot help with that.",
		"broken object":    "prefix {\"question\": } suffix",
		"two objects":      `{"a": 1} and then {"b": 2}`,
		"array top level":  `[1, 2, 3]`,
		"empty":            "",
		"unbalanced brace": "{ this is not json",
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStructuredResponse(text)
			require.ErrorIs(t, err, ErrStructuredResponse)
		})
	}
}

func TestBuildStructuredPromptAppendsSchema(t *testing.T) {
	prompt := BuildStructuredPrompt("Generate one question.", questionSchema())

	require.True(t, strings.HasPrefix(prompt, "Generate one question."))
	require.Contains(t, prompt, "Please respond with a valid JSON object that matches this schema:")
	require.Contains(t, prompt, `"difficulty"`)
	require.True(t, strings.HasSuffix(prompt, "Return only the JSON object, no additional text."))
}

func TestGenerateStructuredUsesTextGenerator(t *testing.T) {
	gen := &stubTextGenerator{response: "Result:\n{\"question\": \"Why?\"}"}

	obj, err := GenerateStructured(context.Background(), gen, StructuredRequest{Prompt: "ask", Schema: questionSchema()})
	require.NoError(t, err)
	require.Equal(t, "Why?", obj["question"])
	require.Contains(t, gen.lastPrompt, "Return only the JSON object")
}

func TestGenerateStructuredPropagatesProviderError(t *testing.T) {
	providerErr := &ProviderError{Provider: ProviderOpenAI, StatusCode: 500, Body: "boom"}
	gen := &stubTextGenerator{err: providerErr}

	_, err := GenerateStructured(context.Background(), gen, StructuredRequest{Prompt: "ask", Schema: questionSchema()})
	var target *ProviderError
	require.True(t, errors.As(err, &target))
	require.Equal(t, 500, target.StatusCode)
}

func TestMissingRequired(t *testing.T) {
	missing := MissingRequired(questionSchema(), map[string]interface{}{"question": "Why?", "category": "General"})
	require.Equal(t, []string{"difficulty", "purpose"}, missing)

	generic := Schema{"required": []interface{}{"questions"}}
	require.Empty(t, MissingRequired(generic, map[string]interface{}{"questions": []interface{}{}}))
}

func TestCheckSchema(t *testing.T) {
	valid := map[string]interface{}{"question": "Why?", "category": "General", "difficulty": "easy", "purpose": "warmup"}
	require.NoError(t, CheckSchema(questionSchema(), valid))

	invalid := map[string]interface{}{"question": "Why?", "category": "General", "difficulty": "impossible", "purpose": "warmup"}
	require.Error(t, CheckSchema(questionSchema(), invalid))
}
