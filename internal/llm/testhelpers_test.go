package llm

var notesSchema = &Schema{
	Name:        "test-notes",
	Description: "Study notes keyed by topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"notes": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic_id": map[string]any{"type": "string"},
						"note":     map[string]any{"type": "string"},
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

const validNotes = `{"notes":[{"topic_id":"bio-cells","note":"Sketch a cell from memory."}]}`
