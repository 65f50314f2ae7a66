package leasefields

// BuildJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the model
// reply as a generic map. Validation against it is advisory: the cleaning
// pass accepts anything, so a mismatch is logged rather than fatal. Value
// fields therefore also admit null and string-typed numbers.
func BuildJSONSchema() map[string]any {
	props := make(map[string]any, 2*len(Specs)+2)
	for _, fs := range Specs {
		switch fs.Kind {
		case KindNumber:
			props[fs.Name] = map[string]any{"type": []string{"number", "string", "null"}}
		case KindBool:
			props[fs.Name] = map[string]any{"type": []string{"boolean", "string", "null"}}
		default:
			props[fs.Name] = map[string]any{"type": []string{"string", "array", "null"}}
		}
		props[fs.SourceKey()] = map[string]any{"type": []string{"string", "null"}}
	}
	props["confidence_score"] = map[string]any{"type": []string{"number", "null"}}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties":           props,
	}
}
