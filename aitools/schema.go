package aitools

import (
	"encoding/json"
)

// PropertyType represents a JSON Schema type
type PropertyType string

const (
	TypeString  PropertyType = "string"
	TypeNumber  PropertyType = "number"
	TypeInteger PropertyType = "integer"
	TypeBoolean PropertyType = "boolean"
	TypeArray   PropertyType = "array"
	TypeObject  PropertyType = "object"
)

// Property defines a single property in a JSON Schema
type Property struct {
	Type        PropertyType `json:"type"`
	Description string       `json:"description,omitempty"`
	Enum        []string     `json:"enum,omitempty"`
	Items       *Property    `json:"items,omitempty"` // For array types
}

// PropertyMap is a map of property names to their definitions
type PropertyMap map[string]Property

// Schema represents a JSON Schema for tool parameters
type Schema struct {
	Type       PropertyType `json:"type"`
	Properties PropertyMap  `json:"properties"`
	Required   []string     `json:"required,omitempty"`
}

// String returns the JSON representation of the schema
func (s Schema) String() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Map returns the schema as generic JSON values, the shape most provider SDKs
// accept for function parameters.
func (s Schema) Map() map[string]any {
	out := map[string]any{
		"type":       string(s.Type),
		"properties": s.PropertiesMap(),
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	} else {
		out["required"] = []string{}
	}
	return out
}

// PropertiesMap returns just the properties as generic JSON values.
func (s Schema) PropertiesMap() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		props[name] = p.Map()
	}
	return props
}

// Map returns the property as generic JSON values.
func (p Property) Map() map[string]any {
	out := map[string]any{"type": string(p.Type)}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		out["enum"] = p.Enum
	}
	if p.Items != nil {
		out["items"] = p.Items.Map()
	}
	return out
}
