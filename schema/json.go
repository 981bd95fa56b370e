package schema

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

const URL = "http://json-schema.org/draft-07/schema#"

type Type string

const (
	String  Type = "string"
	Number  Type = "number"
	Integer Type = "integer"
	Boolean Type = "boolean"
	Array   Type = "array"
	Object  Type = "object"
)

// JSON is a way to describe a JSON Schema
type JSON struct {
	Type                 interface{}      `json:"type,omitzero"` // Can be Type or []interface{} for union types like ["string", "null"]
	Description          string           `json:"description,omitzero"`
	Properties           map[string]*JSON `json:"properties,omitzero"`
	Items                *JSON            `json:"items,omitzero"`
	Enum                 []string         `json:"enum,omitzero"`
	Required             []string         `json:"required,omitzero"`
	AdditionalProperties *bool            `json:"additionalProperties,omitzero"`
	Schema               string           `json:"$schema,omitzero"`
	OneOf                []*JSON          `json:"oneOf,omitzero"`
	AnyOf                []*JSON          `json:"anyOf,omitzero"`
	AllOf                []*JSON          `json:"allOf,omitzero"`
}

// Definition converts the schema to its wire form: the generic value tree a
// client would see after decoding the schema from JSON.
func (j *JSON) Definition() map[string]any {
	if j == nil {
		return nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// ForStruct builds an object schema from a request struct. Property names
// come from json tags, falling back to the lowerCamel form of the Go field
// name. Fields without omitempty/omitzero are listed as required. A field
// description can be supplied with a `description` struct tag.
func ForStruct(v any) *JSON {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return &JSON{Type: Object}
	}
	return forStructType(t)
}

func forStructType(t reflect.Type) *JSON {
	result := &JSON{
		Type:                 Object,
		Properties:           make(map[string]*JSON),
		AdditionalProperties: boolPtr(false),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, optional, skip := parseJSONTag(field.Tag.Get("json"))
		if skip {
			continue
		}
		if name == "" {
			name = strcase.ToLowerCamel(field.Name)
		}

		prop := forType(field.Type)
		if desc := field.Tag.Get("description"); desc != "" {
			prop.Description = desc
		}
		result.Properties[name] = prop
		if !optional {
			result.Required = append(result.Required, name)
		}
	}

	return result
}

func forType(t reflect.Type) *JSON {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &JSON{Type: String}
	case reflect.Bool:
		return &JSON{Type: Boolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &JSON{Type: Integer}
	case reflect.Float32, reflect.Float64:
		return &JSON{Type: Number}
	case reflect.Slice, reflect.Array:
		return &JSON{Type: Array, Items: forType(t.Elem())}
	case reflect.Struct:
		return forStructType(t)
	case reflect.Map:
		return &JSON{Type: Object}
	default:
		return &JSON{}
	}
}

// parseJSONTag splits a json struct tag into the wire name and whether the
// field is optional. A tag of "-" skips the field entirely.
func parseJSONTag(tag string) (name string, optional, skip bool) {
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			optional = true
		}
	}
	return name, optional, false
}

func boolPtr(b bool) *bool {
	return &b
}
