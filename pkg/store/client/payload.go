package client

import "strconv"

// Payload is an untyped JSON object as decoded from a response body.
// Accessors return zero values for absent or mistyped fields so that
// callers can lift payloads into rows without nil checks; a missing field
// becomes an empty cell, never a crash.
type Payload map[string]any

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Str returns the field as a string. Numbers and booleans are formatted,
// since the sources are inconsistent about quoting IDs.
func (p Payload) Str(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (p Payload) Num(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func (p Payload) Bool(key string) bool {
	v, _ := p[key].(bool)
	return v
}

func (p Payload) Map(key string) Payload {
	v, _ := p[key].(map[string]any)
	return Payload(v)
}

// Slice returns the field as a list of objects, skipping non-object
// elements.
func (p Payload) Slice(key string) []Payload {
	raw, _ := p[key].([]any)
	out := make([]Payload, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, Payload(m))
		}
	}
	return out
}

// Strings returns the field as a list of strings, formatting scalar
// elements the same way Str does.
func (p Payload) Strings(key string) []string {
	raw, _ := p[key].([]any)
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		switch v := el.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	return out
}
