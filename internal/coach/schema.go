package coach

import "github.com/abhisek/studyplan/internal/llm"

// NotesSchema defines the JSON schema for per-topic study notes.
var NotesSchema = &llm.Schema{
	Name:        "study-notes",
	Description: "One short study note per topic scheduled this week",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"notes": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic_id": map[string]any{
							"type":        "string",
							"description": "The topic ID exactly as given",
						},
						"note": map[string]any{
							"type":        "string",
							"description": "One encouraging sentence on how to use this week's sessions",
						},
					},
					"required":             []any{"topic_id", "note"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"notes"},
		"additionalProperties": false,
	},
}
