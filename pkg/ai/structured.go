package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const structuredInstruction = `

Please respond with a valid JSON object that matches this schema:
%s

Return only the JSON object, no additional text.`

// greedy on purpose: first '{' to last '}', across newlines
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// BuildStructuredPrompt appends the schema instruction block to prompt.
func BuildStructuredPrompt(prompt string, schema Schema) string {
	encoded, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		encoded = []byte("{}")
	}
	return strings.TrimSpace(prompt) + fmt.Sprintf(structuredInstruction, encoded)
}

// ParseStructuredResponse parses text as a JSON object. When the whole text is not an object it
// retries on the greedy brace span; if both stages fail it returns ErrStructuredResponse.
func ParseStructuredResponse(text string) (map[string]interface{}, error) {
	if obj, ok := decodeObject(text); ok {
		return obj, nil
	}

	if span := jsonObjectPattern.FindString(text); span != "" {
		if obj, ok := decodeObject(span); ok {
			return obj, nil
		}
	}

	return nil, ErrStructuredResponse
}

func decodeObject(text string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// GenerateStructured is the schema-guided contract shared by every adapter.
func GenerateStructured(ctx context.Context, gen TextGenerator, req StructuredRequest) (map[string]interface{}, error) {
	text, err := gen.GenerateText(ctx, GenerationRequest{
		Prompt:     BuildStructuredPrompt(req.Prompt, req.Schema),
		Parameters: req.Parameters,
	})
	if err != nil {
		return nil, err
	}
	return ParseStructuredResponse(text)
}

// MissingRequired lists the schema's top-level required fields absent from obj.
func MissingRequired(schema Schema, obj map[string]interface{}) []string {
	var missing []string
	for _, field := range requiredFields(schema) {
		if _, ok := obj[field]; !ok {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

func requiredFields(schema Schema) []string {
	switch required := schema["required"].(type) {
	case []string:
		return required
	case []interface{}:
		fields := make([]string, 0, len(required))
		for _, item := range required {
			if name, ok := item.(string); ok {
				fields = append(fields, name)
			}
		}
		return fields
	default:
		return nil
	}
}

// CheckSchema validates obj against schema. Callers treat a failure as advisory.
func CheckSchema(schema Schema, obj map[string]interface{}) error {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.schema.json", bytes.NewReader(encoded)); err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	compiled, err := compiler.Compile("response.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	return compiled.Validate(map[string]interface{}(obj))
}
