package plan

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Model output is untrusted: before any AI-produced JSON is parsed into
// domain types it must pass a shape check, otherwise the deterministic
// fallback takes over.

const scheduleSchema = `{
	"type": "object",
	"required": ["weeklyPlan"],
	"properties": {
		"weeklyPlan": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["day", "sessions"],
				"properties": {
					"day": {"type": "string"},
					"sessions": {"type": "array"}
				}
			}
		},
		"dailyStudyHours": {"type": "number"},
		"weeklyStudyDays": {"type": "number"}
	}
}`

const roadmapSchema = `{
	"type": "object",
	"required": ["title", "stages"],
	"properties": {
		"title": {"type": "string"},
		"stages": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "topics"],
				"properties": {
					"name": {"type": "string"},
					"topics": {"type": "array", "minItems": 1}
				}
			}
		}
	}
}`

var (
	scheduleSchemaLoader = gojsonschema.NewStringLoader(scheduleSchema)
	roadmapSchemaLoader  = gojsonschema.NewStringLoader(roadmapSchema)
)

// ValidateScheduleJSON checks that data has the weekly-schedule shape.
func ValidateScheduleJSON(data []byte) error {
	return validate(scheduleSchemaLoader, data, "schedule")
}

// ValidateRoadmapJSON checks that data has the staged-roadmap shape.
func ValidateRoadmapJSON(data []byte) error {
	return validate(roadmapSchemaLoader, data, "roadmap")
}

func validate(schema gojsonschema.JSONLoader, data []byte, what string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating %s: %w", what, err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%s shape invalid: %s", what, strings.Join(problems, "; "))
}
