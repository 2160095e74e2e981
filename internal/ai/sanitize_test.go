package ai_test

import (
	"encoding/json"
	"testing"

	"github.com/learnloop/learnloop/internal/ai"
)

func TestSanitizeJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"NaN value",
			`{"duration": NaN, "order": 3}`,
			`{"duration": null, "order": 3}`,
		},
		{
			"undefined value",
			`{"score": undefined}`,
			`{"score": null}`,
		},
		{
			"Infinity values",
			`{"a": Infinity, "b": -Infinity}`,
			`{"a": null, "b": null}`,
		},
		{
			"no whitespace",
			`{"duration":NaN}`,
			`{"duration":null}`,
		},
		{
			"valid JSON untouched",
			`{"duration": 2, "title": "Infinity War"}`,
			`{"duration": 2, "title": "Infinity War"}`,
		},
		{
			"nested",
			`{"plan": {"sessions": [{"duration": NaN}]}}`,
			`{"plan": {"sessions": [{"duration": null}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ai.SanitizeJSON(tt.in)
			if got != tt.want {
				t.Errorf("SanitizeJSON() = %q, want %q", got, tt.want)
			}
			var v any
			if err := json.Unmarshal([]byte(got), &v); err != nil {
				t.Errorf("sanitized output is not valid JSON: %v", err)
			}
		})
	}
}
