package jsonutil

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/kaptinlin/jsonrepair"
)

var (
	fencedObjectRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	fencedArrayRe  = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")
	objectRe       = regexp.MustCompile(`(?s)\{.*\}`)
	arrayRe        = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSONFromString pulls the first JSON object or array literal out of
// free text, preferring content inside fenced code blocks. Returns the empty
// string if nothing that looks like JSON is found.
func ExtractJSONFromString(str string) string {
	if m := fencedObjectRe.FindStringSubmatch(str); m != nil {
		return m[1]
	}
	if m := fencedArrayRe.FindStringSubmatch(str); m != nil {
		return m[1]
	}
	if m := objectRe.FindString(str); m != "" {
		return m
	}
	if m := arrayRe.FindString(str); m != "" {
		return m
	}
	return ""
}

// ValidateAndRepairJSON guarantees the returned text parses as JSON.
// Recovery sequence, each step tried only if the prior failed: parse as-is,
// extract a JSON literal and parse it, structurally repair the text
// (trailing commas, unquoted keys, single quotes) and parse the result.
// If all three fail the error carries both the original and the repair-stage
// messages so malformed provider output is never silently passed through.
func ValidateAndRepairJSON(jsonString string) (string, error) {
	parseErr := parse(jsonString)
	if parseErr == nil {
		return jsonString, nil
	}

	if extracted := ExtractJSONFromString(jsonString); extracted != "" {
		if parse(extracted) == nil {
			return extracted, nil
		}
	}

	repaired, repairErr := jsonrepair.JSONRepair(jsonString)
	if repairErr == nil {
		if err := parse(repaired); err == nil {
			return repaired, nil
		}
		repairErr = fmt.Errorf("repaired text still invalid")
	}

	return "", fmt.Errorf("failed to parse or repair JSON: %v, repair error: %v", parseErr, repairErr)
}

func parse(s string) error {
	var v interface{}
	return json.Unmarshal([]byte(s), &v)
}
