package extract

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/tidwall/gjson"

	"workflow-mapper/internal/diagnostic"
)

// FromJSON parses sample text and extracts its fields. Blank text yields no
// fields; malformed text yields an InvalidJSON error.
func FromJSON(data []byte) ([]Descriptor, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Descriptor{}, nil
	}

	if !gjson.ValidBytes(data) {
		// gjson only reports validity; encoding/json supplies the offset for
		// the inline message.
		var probe any
		return nil, diagnostic.InvalidJSON(json.Unmarshal(data, &probe))
	}

	return Fields(gjson.ParseBytes(data)), nil
}

// Fields flattens a parsed JSON value. Values other than objects yield an
// empty list.
func Fields(value gjson.Result) []Descriptor {
	out := []Descriptor{}
	if !value.IsObject() {
		return out
	}

	walkObject(value, nil, &out)

	return out
}

type member struct {
	key   string
	value gjson.Result
}

// members returns the object's members in document order. A repeated key keeps
// the position of its first occurrence and the value of its last, so paths
// stay unique.
func members(obj gjson.Result) []member {
	var out []member

	pos := map[string]int{}

	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if i, ok := pos[key]; ok {
			out[i].value = v
			return true
		}

		pos[key] = len(out)
		out = append(out, member{key: key, value: v})

		return true
	})

	return out
}

func walkObject(obj gjson.Result, parent []string, out *[]Descriptor) {
	for _, m := range members(obj) {
		segments := append(slices.Clone(parent), m.key)
		d := Descriptor{
			Path:        JoinPath(segments),
			Segments:    segments,
			Type:        typeOf(m.value),
			SampleValue: m.value.Value(),
		}

		switch {
		case m.value.IsArray():
			d.IsArray = true

			elems := m.value.Array()
			if len(elems) == 0 {
				*out = append(*out, d)
				continue
			}

			if !elems[0].IsObject() {
				d.Type = typeOf(elems[0])
				*out = append(*out, d)

				continue
			}

			var children []Descriptor

			walkObject(elems[0], segments, &children)

			d.Children = children
			*out = append(*out, d)
			*out = append(*out, children...)

		case m.value.IsObject():
			*out = append(*out, d)
			walkObject(m.value, segments, out)

		default:
			*out = append(*out, d)
		}
	}
}

func typeOf(v gjson.Result) Type {
	switch v.Type {
	case gjson.String:
		return TypeString
	case gjson.Number:
		return TypeNumber
	case gjson.True, gjson.False:
		return TypeBoolean
	case gjson.JSON:
		if v.IsArray() {
			return TypeArray
		}

		return TypeObject
	default:
		return TypeNull
	}
}
