package extract

import "strings"

// Type is the JSON type of a sampled value.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeNull    Type = "null"
)

// Descriptor describes one field occurrence of a sample document.
type Descriptor struct {
	// Path is the dotted location of the field, unique within one extraction.
	// Dots and backslashes inside keys are backslash-escaped.
	Path string `json:"path" yaml:"path"`
	// Segments are the raw, unescaped keys forming Path.
	Segments []string `json:"-" yaml:"-"`
	// Type is taken from the sampled value; for arrays of primitives it is the
	// element type.
	Type    Type `json:"type" yaml:"type"`
	IsArray bool `json:"is_array" yaml:"is_array"`
	// Children holds the descriptors of the first element of an array of objects.
	Children []Descriptor `json:"children,omitempty" yaml:"children,omitempty"`
	// SampleValue is kept for display and type inference only.
	SampleValue any `json:"sample_value" yaml:"sample_value"`
}

// Structural reports whether the descriptor is a plain object: it exists so the
// walk can recurse and is never mapped directly.
func (d Descriptor) Structural() bool {
	return d.Type == TypeObject && !d.IsArray
}

// Name returns the last path segment.
func (d Descriptor) Name() string {
	if len(d.Segments) > 0 {
		return d.Segments[len(d.Segments)-1]
	}

	return LastSegment(d.Path)
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`)

// JoinPath joins raw keys into a dotted path. Dots and backslashes inside a
// key are escaped with a backslash, so distinct key sequences never share a
// path.
func JoinPath(segments []string) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = pathEscaper.Replace(seg)
	}

	return strings.Join(escaped, ".")
}

// SplitPath reverses JoinPath.
func SplitPath(path string) []string {
	var (
		out     []string
		b       strings.Builder
		escaped bool
	)

	for i := 0; i < len(path); i++ {
		c := path[i]

		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '.':
			out = append(out, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}

	return append(out, b.String())
}

// LastSegment returns the raw key after the last unescaped dot of a path.
func LastSegment(path string) string {
	segs := SplitPath(path)

	return segs[len(segs)-1]
}

// Leaves returns the mappable (non-structural) descriptors in order.
func Leaves(descs []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(descs))

	for _, d := range descs {
		if !d.Structural() {
			out = append(out, d)
		}
	}

	return out
}

// ArrayPaths returns the set of paths whose value is an array.
func ArrayPaths(descs []Descriptor) map[string]bool {
	out := map[string]bool{}

	for _, d := range descs {
		if d.IsArray {
			out[d.Path] = true
		}
	}

	return out
}
