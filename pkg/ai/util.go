package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// StripCodeFence removes a single Markdown code fence wrapping s, including
// an optional language tag ("```json"). Input without a fence is returned
// trimmed but otherwise untouched. Models regularly fence their JSON output
// despite being told not to.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Language tag sits on the first line ("json\n{...}") or directly
	// prefixes the payload ("json{...}").
	if rest, ok := strings.CutPrefix(s, "json"); ok {
		s = strings.TrimSpace(rest)
	}

	return s
}

// GenerateSchema creates a JSON Schema from the given Go type. The schema is
// rendered into prompts so the model sees the exact shape it must return.
func GenerateSchema(value any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	v := reflect.New(t).Interface()
	return reflector.Reflect(v)
}

// SchemaString renders the JSON Schema for a Go type as a compact JSON string.
func SchemaString(value any) string {
	schema := GenerateSchema(value)
	data, err := json.Marshal(schema)
	if err != nil {
		return ""
	}
	return string(data)
}

// UnmarshalFlexible attempts to unmarshal model output into the target with
// multiple fallback strategies: code fences are stripped, then standard JSON
// parsing, then double-encoded strings, then a repair pass over malformed
// JSON (unquoted keys, trailing commas, truncated objects).
//
// Example:
//
//	var result MyStruct
//	// All of these inputs would work:
//	UnmarshalFlexible("```json\n{\"name\": \"test\"}\n```", &result) // fenced
//	UnmarshalFlexible(`"{\"name\": \"test\"}"`, &result)             // double-encoded
//	UnmarshalFlexible(`{name: "test"}`, &result)                     // malformed (repaired)
func UnmarshalFlexible(input string, out any) error {
	input = StripCodeFence(input)

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	var asString string
	if err := json.Unmarshal([]byte(input), &asString); err == nil {
		asString = StripCodeFence(asString)
		if err := json.Unmarshal([]byte(asString), out); err == nil {
			return nil
		}
		input = asString
	}

	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("json repair failed: %w (input: %s)", err, input)
	}

	if err := json.Unmarshal([]byte(repaired), out); err == nil {
		return nil
	}

	return fmt.Errorf(
		"unmarshal failed after repair: input=%s repaired=%s",
		input, repaired,
	)
}
