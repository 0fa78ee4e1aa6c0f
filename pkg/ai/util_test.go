package ai

import (
	"strings"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: `{"relationship": "supports"}`,
			want:  `{"relationship": "supports"}`,
		},
		{
			name:  "plain fence",
			input: "```\n{\"relationship\": \"supports\"}\n```",
			want:  `{"relationship": "supports"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"relationship\": \"supports\"}\n```",
			want:  `{"relationship": "supports"}`,
		},
		{
			name:  "json tag without newline",
			input: "```json{\"a\":1}```",
			want:  `{"a":1}`,
		},
		{
			name:  "unterminated fence",
			input: "```json\n{\"a\":1}",
			want:  `{"a":1}`,
		},
		{
			name:  "surrounding whitespace",
			input: "  \n```json\n{\"a\":1}\n```\n  ",
			want:  `{"a":1}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.input); got != tc.want {
				t.Fatalf("StripCodeFence() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_Variants(t *testing.T) {
	type relationship struct {
		Relationship string `json:"relationship"`
		Explanation  string `json:"explanation"`
	}

	tests := []struct {
		name  string
		input string
		want  relationship
	}{
		{
			name:  "valid json object",
			input: `{"relationship":"updates","explanation":"newer revision"}`,
			want:  relationship{Relationship: "updates", Explanation: "newer revision"},
		},
		{
			name:  "fenced json",
			input: "```json\n{\"relationship\":\"contradicts\",\"explanation\":\"opposing claims\"}\n```",
			want:  relationship{Relationship: "contradicts", Explanation: "opposing claims"},
		},
		{
			name:  "unquoted keys and single quotes",
			input: `{relationship: 'supports', explanation: 'same idea'}`,
			want:  relationship{Relationship: "supports", Explanation: "same idea"},
		},
		{
			name:  "trailing comma",
			input: `{"relationship":"supports",}`,
			want:  relationship{Relationship: "supports"},
		},
		{
			name:  "truncated object",
			input: `{"relationship":"supports"`,
			want:  relationship{Relationship: "supports"},
		},
		{
			name:  "double-encoded",
			input: `"{\"relationship\": \"relates_to\"}"`,
			want:  relationship{Relationship: "relates_to"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got relationship
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_IntoRawMessage(t *testing.T) {
	// Contradiction extraction parses into json.RawMessage first so it can
	// normalize arrays, objects, and null uniformly.
	inputs := []string{`[]`, `{}`, `null`, "```json\n[{\"doc1_claim\":\"x\"}]\n```"}
	for _, input := range inputs {
		var raw any
		if err := UnmarshalFlexible(input, &raw); err != nil {
			t.Fatalf("UnmarshalFlexible(%q) error = %v", input, err)
		}
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type relationship struct {
		Relationship string `json:"relationship"`
	}

	var got relationship
	if err := UnmarshalFlexible("the documents seem unrelated", &got); err == nil {
		t.Fatal("UnmarshalFlexible() expected error for prose input")
	}
}

func TestSchemaString(t *testing.T) {
	type shape struct {
		Relationship string `json:"relationship"`
	}

	s := SchemaString(shape{})
	if s == "" {
		t.Fatal("SchemaString() returned empty schema")
	}
	for _, want := range []string{`"relationship"`, `"object"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("SchemaString() = %s, missing %s", s, want)
		}
	}
}
