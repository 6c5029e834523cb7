package match

import (
	"maps"
	"strings"

	"workflow-mapper/internal/schema"
)

// DefaultAliases maps common external field names to canonical schema
// field names. Keys and values are lower case.
var DefaultAliases = map[string]string{
	"license_plate":       "plate_no",
	"licence_plate":       "plate_no",
	"plate_number":        "plate_no",
	"registration_number": "plate_no",
	"mileage":             "vehicle_other_details",
	"odometer":            "vehicle_other_details",
	"vin_number":          "vin",
	"chassis_number":      "vin",
	"manufacturer":        "make",
	"brand":               "make",
	"email_address":       "email",
	"phone_number":        "phone",
	"mobile":              "phone",
	"zip":                 "postal_code",
	"zipcode":             "postal_code",
}

// Rule identifies which matching rule produced a match.
type Rule int

const (
	RuleNone Rule = iota
	RuleExact
	RuleSubstring
	RuleAlias
)

// String returns a human-readable rule name.
func (r Rule) String() string {
	switch r {
	case RuleExact:
		return "exact"
	case RuleSubstring:
		return "substring"
	case RuleAlias:
		return "alias"
	default:
		return "none"
	}
}

// Matcher finds the schema field a source field should map to.
type Matcher struct {
	aliases map[string]string
}

// NewMatcher returns a matcher using DefaultAliases extended (and overridden)
// by extra. An extra alias with an empty target removes the default.
func NewMatcher(extra map[string]string) *Matcher {
	aliases := maps.Clone(DefaultAliases)

	for k, v := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		if v == "" {
			delete(aliases, k)
			continue
		}

		aliases[k] = strings.ToLower(strings.TrimSpace(v))
	}

	return &Matcher{aliases: aliases}
}

// Aliases returns a copy of the alias table in use.
func (m *Matcher) Aliases() map[string]string {
	return maps.Clone(m.aliases)
}

// Match returns the best schema field for fieldName. Rules, first match wins,
// all case-insensitive:
//  1. exact name equality
//  2. substring in either direction, first candidate in list order
//  3. alias table lookup, then exact search for the alias target
func (m *Matcher) Match(fieldName string, candidates schema.Fields) (schema.Field, bool) {
	f, _, ok := m.MatchRule(fieldName, candidates)
	return f, ok
}

// MatchRule is Match that also reports which rule fired.
func (m *Matcher) MatchRule(fieldName string, candidates schema.Fields) (schema.Field, Rule, bool) {
	name := strings.ToLower(fieldName)
	if name == "" {
		return schema.Field{}, RuleNone, false
	}

	for _, c := range candidates {
		if strings.ToLower(c.Name) == name {
			return c, RuleExact, true
		}
	}

	for _, c := range candidates {
		cn := strings.ToLower(c.Name)
		if cn == "" {
			continue
		}

		if strings.Contains(cn, name) || strings.Contains(name, cn) {
			return c, RuleSubstring, true
		}
	}

	if target, ok := m.aliases[name]; ok {
		for _, c := range candidates {
			if strings.ToLower(c.Name) == target {
				return c, RuleAlias, true
			}
		}
	}

	return schema.Field{}, RuleNone, false
}
