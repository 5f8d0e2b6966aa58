package jsonutil

import (
	"encoding/json"
	"testing"
)

// TestValidateAndRepairJSONPassesThroughValidJSON tests that already-valid
// JSON is returned unchanged
func TestValidateAndRepairJSONPassesThroughValidJSON(t *testing.T) {
	input := `[{"code": "EN", "name": "English"}]`

	out, err := ValidateAndRepairJSON(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if out != input {
		t.Errorf("expected input to pass through unchanged, got: %s", out)
	}
}

// TestValidateAndRepairJSONRepairsUnquotedKeys tests the structural repair
// stage on unquoted object keys
func TestValidateAndRepairJSONRepairsUnquotedKeys(t *testing.T) {
	input := `{code: "EN", name: "English"}`

	out, err := ValidateAndRepairJSON(input)
	if err != nil {
		t.Fatalf("expected repair to succeed, got: %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("repaired output does not parse: %v", err)
	}

	if parsed["code"] != "EN" || parsed["name"] != "English" {
		t.Errorf("expected repaired object {code: EN, name: English}, got: %v", parsed)
	}
}

// TestValidateAndRepairJSONExtractsFromCodeBlock tests extraction of JSON
// wrapped in a fenced markdown code block
func TestValidateAndRepairJSONExtractsFromCodeBlock(t *testing.T) {
	input := "Here you go:\n```json\n[{\"code\": \"RU\", \"name\": \"Russian\"}]\n```\nEnjoy!"

	out, err := ValidateAndRepairJSON(input)
	if err != nil {
		t.Fatalf("expected extraction to succeed, got: %v", err)
	}

	var parsed []map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("extracted output does not parse: %v", err)
	}

	if len(parsed) != 1 || parsed[0]["code"] != "RU" {
		t.Errorf("unexpected extracted content: %v", parsed)
	}
}

// TestValidateAndRepairJSONFailsWithBothErrors tests that hopeless input
// fails rather than silently passing malformed data through. Note that the
// repair stage quotes bare prose into a JSON string, so only genuinely
// unrepairable input (here: empty) reaches the terminal error.
func TestValidateAndRepairJSONFailsWithBothErrors(t *testing.T) {
	_, err := ValidateAndRepairJSON("")
	if err == nil {
		t.Fatal("expected an error for empty input")
	}
}

// TestValidateAndRepairJSONQuotesBareProse documents the repair stage's
// behavior on plain text: it becomes a JSON string, matching the upstream
// jsonrepair algorithm
func TestValidateAndRepairJSONQuotesBareProse(t *testing.T) {
	out, err := ValidateAndRepairJSON("hello")
	if err != nil {
		t.Fatalf("expected prose to be repaired into a JSON string, got: %v", err)
	}

	var s string
	if jsonErr := json.Unmarshal([]byte(out), &s); jsonErr != nil {
		t.Fatalf("repaired prose does not parse as a JSON string: %v", jsonErr)
	}
}

// TestExtractJSONFromString tests the extraction order: fenced blocks first,
// then bare object and array literals
func TestExtractJSONFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "fenced object",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "fenced array",
			input:    "```\n[1, 2]\n```",
			expected: `[1, 2]`,
		},
		{
			name:     "bare object in prose",
			input:    `The answer is {"a": 1} as requested`,
			expected: `{"a": 1}`,
		},
		{
			// object literals win over arrays, so an array of objects
			// yields its first object
			name:     "array of objects yields inner object",
			input:    `Languages: [{"code": "EN"}]`,
			expected: `{"code": "EN"}`,
		},
		{
			name:     "bare array in prose",
			input:    `Counts: [1, 2, 3] as requested`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "nothing to extract",
			input:    "plain text",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSONFromString(tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
