package mapping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/match"
	"workflow-mapper/internal/schema"
)

var vehicleFields = schema.Fields{
	{Name: "make", Type: "string", Required: true},
	{Name: "model", Type: "string"},
	{Name: "vehicle_specifications", Type: "object"},
}

func mustExtract(t *testing.T, sample string) []extract.Descriptor {
	t.Helper()

	descs, err := extract.FromJSON([]byte(sample))
	require.NoError(t, err)

	return descs
}

func TestSynthesize_DirectAndCustom(t *testing.T) {
	descs := mustExtract(t, `{"make":"Toyota","model":"Camry","specs":{"color":"red"}}`)

	got := Synthesize(descs, vehicleFields, DirectionInbound)

	expected := []FieldMapping{
		{SourceField: "make", TargetField: "make", DataType: "string", IsRequired: true, Transformation: TransformDirect},
		{SourceField: "model", TargetField: "model", DataType: "string", Transformation: TransformDirect},
		{
			SourceField:    "specs.color",
			TargetField:    schema.CustomFields,
			DataType:       "string",
			IsCustom:       true,
			CustomFieldKey: "color",
			Transformation: TransformCustom,
		},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Synthesize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_EveryLeafGetsOneRow(t *testing.T) {
	descs := mustExtract(t, `{
		"license_plate": "AB123",
		"odometer": 1200,
		"owner": {"name": "Ann", "email_address": "ann@example.com"},
		"tags": ["a", "b"]
	}`)

	fields := schema.Fields{
		{Name: "plate_no", Type: "string", Required: true},
		{Name: "vehicle_other_details", Type: "number"},
		{Name: "email", Type: "string"},
		{Name: "tags", Type: "string", IsArray: true},
	}

	got := Synthesize(descs, fields, DirectionInbound)

	sources := make([]string, len(got))
	for i, m := range got {
		sources[i] = m.SourceField
	}

	assert.Equal(t, []string{"license_plate", "odometer", "owner.name", "owner.email_address", "tags"}, sources)

	assert.Equal(t, "plate_no", got[0].TargetField)
	assert.Equal(t, "vehicle_other_details", got[1].TargetField)
	assert.True(t, got[2].IsCustom)
	assert.Equal(t, "name", got[2].CustomFieldKey)
	assert.Equal(t, "email", got[3].TargetField)
	assert.Equal(t, "tags", got[4].TargetField)
	assert.True(t, got[4].IsArray)
}

func TestSynthesize_OutboundSameShape(t *testing.T) {
	descs := mustExtract(t, `{"make":"Toyota","color":"red"}`)

	in := Synthesize(descs, vehicleFields, DirectionInbound)
	out := Synthesize(descs, vehicleFields, DirectionOutbound)

	assert.Equal(t, in, out)
}

func TestSynthesize_NoSchemaAllCustom(t *testing.T) {
	descs := mustExtract(t, `{"a":1,"b":{"c":true}}`)

	got := Synthesize(descs, nil, "")

	require.Len(t, got, 2)

	for _, m := range got {
		assert.True(t, m.IsCustom, m.SourceField)
		assert.Equal(t, schema.CustomFields, m.TargetField)
	}

	assert.Equal(t, "c", got[1].CustomFieldKey)
	assert.Equal(t, "boolean", got[1].DataType)
}

func TestSynthesize_ExtraAliases(t *testing.T) {
	descs := mustExtract(t, `{"colour":"red"}`)
	fields := schema.Fields{{Name: "paint", Type: "string"}}

	got := NewSynthesizer(match.NewMatcher(map[string]string{"colour": "paint"})).
		Synthesize(descs, fields, DirectionInbound)

	require.Len(t, got, 1)
	assert.Equal(t, "paint", got[0].TargetField)
	assert.False(t, got[0].IsCustom)
}

func TestSynthesizeScoped(t *testing.T) {
	descs := mustExtract(t, `{"vin":"X1","email":"a@b.c","extra":1}`)

	scope := Scope{
		{SchemaType: "vehicle", Fields: schema.Fields{{Name: "vin", Type: "string", Required: true}}},
		{SchemaType: "contact", Fields: schema.Fields{{Name: "email", Type: "string"}}},
	}

	got := NewSynthesizer(nil).SynthesizeScoped(descs, scope, DirectionOutbound)

	require.Len(t, got, 3)
	assert.Equal(t, "vehicle", got[0].SchemaType)
	assert.Equal(t, "vin", got[0].TargetField)
	assert.Equal(t, "contact", got[1].SchemaType)
	assert.Equal(t, "email", got[1].TargetField)
	assert.Equal(t, "vehicle", got[2].SchemaType)
	assert.True(t, got[2].IsCustom)
}

func TestSynthesizeScoped_SingleDelegates(t *testing.T) {
	descs := mustExtract(t, `{"make":"Toyota"}`)

	got := NewSynthesizer(nil).SynthesizeScoped(descs, Scope{{SchemaType: "vehicle", Fields: vehicleFields}}, "")

	require.Len(t, got, 1)
	assert.Empty(t, got[0].SchemaType)
	assert.Equal(t, "make", got[0].TargetField)
}
