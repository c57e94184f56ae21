package utils

import "testing"

func TestExtractJSONFromMarkdownBlock(t *testing.T) {
	input := "```json\n{\"options\": [\"a\", \"b\"]}\n```"
	got, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	want := `{"options": ["a", "b"]}`
	if got != want {
		t.Errorf("ExtractJSON = %q, want %q", got, want)
	}
}

func TestExtractJSONWithSurroundingProse(t *testing.T) {
	input := `Here are the options you asked for: {"options": ["x"]} hope that helps!`
	got, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	if got != `{"options": ["x"]}` {
		t.Errorf("ExtractJSON = %q", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	input := `["one", "two", "three"]`
	got, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	if got != input {
		t.Errorf("ExtractJSON = %q, want %q", got, input)
	}
}

func TestExtractJSONNestedBraces(t *testing.T) {
	input := `noise {"outer": {"inner": "value with } in string"}} trailing`
	got, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	if got != `{"outer": {"inner": "value with } in string"}}` {
		t.Errorf("ExtractJSON = %q", got)
	}
}

func TestExtractJSONNoJSON(t *testing.T) {
	if _, err := ExtractJSON("no json here at all"); err == nil {
		t.Error("expected error for input without JSON")
	}
	if _, err := ExtractJSON(""); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestExtractJSONTo(t *testing.T) {
	var result struct {
		Options []string `json:"options"`
	}
	input := "```json\n{\"options\": [\"First\", \"Second\", \"Third\", \"Fourth\"]}\n```"
	if err := ExtractJSONTo(input, &result); err != nil {
		t.Fatalf("ExtractJSONTo returned error: %v", err)
	}
	if len(result.Options) != 4 || result.Options[0] != "First" {
		t.Errorf("decoded options = %v", result.Options)
	}
}
