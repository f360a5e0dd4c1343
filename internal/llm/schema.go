package llm

import "google.golang.org/genai"

// schemaToGenai converts a JSON-schema style map into a genai.Schema.
// Only the subset Gemini understands is carried over: type, description,
// enum, properties, propertyOrdering, required, items and nullable.
func schemaToGenai(schema map[string]any) *genai.Schema {
	if schema == nil {
		return &genai.Schema{Type: genai.TypeString}
	}

	genSchema := &genai.Schema{
		Type:             schemaTypeFromValue(schema),
		Description:      stringField(schema, "description"),
		Enum:             stringList(schema, "enum"),
		Required:         stringList(schema, "required"),
		PropertyOrdering: stringList(schema, "propertyOrdering"),
	}
	if nullable, ok := schema["nullable"].(bool); ok && nullable {
		genSchema.Nullable = &nullable
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		genSchema.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			if propMap, ok := prop.(map[string]any); ok {
				genSchema.Properties[name] = schemaToGenai(propMap)
			}
		}
	}

	if items, ok := schema["items"].(map[string]any); ok {
		genSchema.Items = schemaToGenai(items)
	}

	return genSchema
}

func schemaTypeFromValue(schema map[string]any) genai.Type {
	if t, ok := schema["type"].(string); ok {
		switch t {
		case "string":
			return genai.TypeString
		case "integer":
			return genai.TypeInteger
		case "number":
			return genai.TypeNumber
		case "boolean":
			return genai.TypeBoolean
		case "array":
			return genai.TypeArray
		case "object":
			return genai.TypeObject
		}
	}
	return genai.TypeString
}

func stringList(schema map[string]any, key string) []string {
	if list, ok := schema[key].([]string); ok {
		return list
	}
	if list, ok := schema[key].([]any); ok {
		result := make([]string, 0, len(list))
		for _, r := range list {
			if s, ok := r.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

func stringField(schema map[string]any, key string) string {
	if v, ok := schema[key].(string); ok {
		return v
	}
	return ""
}
