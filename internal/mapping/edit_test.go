package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workflow-mapper/internal/schema"
)

func TestConfiguration_AddUpdateRemove(t *testing.T) {
	base := Configuration{SampleJSON: `{"a":1}`}

	c := base.Add(FieldMapping{SourceField: "a", TargetField: "vin"})
	c = c.Add(FieldMapping{SourceField: "b", TargetField: "make"})

	assert.True(t, base.Empty())
	require.Len(t, c.Mappings, 2)

	updated, err := c.Update(1, FieldMapping{SourceField: "b", TargetField: "model"})
	require.NoError(t, err)
	assert.Equal(t, "make", c.Mappings[1].TargetField)
	assert.Equal(t, "model", updated.Mappings[1].TargetField)
	assert.Equal(t, c.Mappings[0], updated.Mappings[0])

	removed, err := updated.Remove(0)
	require.NoError(t, err)
	require.Len(t, removed.Mappings, 1)
	assert.Equal(t, "b", removed.Mappings[0].SourceField)
	assert.Len(t, updated.Mappings, 2)

	_, err = removed.Update(5, FieldMapping{})
	assert.Error(t, err)

	_, err = removed.Remove(-1)
	assert.Error(t, err)
}

func TestRetarget(t *testing.T) {
	m := FieldMapping{SourceField: "specs.color", TargetField: "make", DataType: "string", IsRequired: true}

	custom := Retarget(m, schema.CustomFields, vehicleFields)
	assert.True(t, custom.IsCustom)
	assert.False(t, custom.IsRequired)
	assert.Equal(t, "color", custom.CustomFieldKey)
	assert.Equal(t, TransformCustom, custom.Transformation)

	back := Retarget(custom, "model", vehicleFields)
	assert.False(t, back.IsCustom)
	assert.Empty(t, back.CustomFieldKey)
	assert.Equal(t, "string", back.DataType)
	assert.False(t, back.IsRequired)
	assert.Equal(t, TransformDirect, back.Transformation)

	unknown := Retarget(m, "nope", vehicleFields)
	assert.Equal(t, "nope", unknown.TargetField)
	assert.Empty(t, unknown.DataType)
}

func TestConfiguration_Reconcile(t *testing.T) {
	c := Configuration{Mappings: []FieldMapping{
		{SourceField: "make", TargetField: "make", DataType: "number"},
		{SourceField: "vin", TargetField: "vin"},
		{SourceField: "x", TargetField: schema.CustomFields, IsCustom: true, CustomFieldKey: "x"},
		{SourceField: "y"},
	}}

	got, dropped := c.Reconcile(SingleScope(vehicleFields))

	require.Len(t, dropped, 1)
	assert.Equal(t, "vin", dropped[0].TargetField)

	require.Len(t, got.Mappings, 3)
	assert.Equal(t, "string", got.Mappings[0].DataType)
	assert.True(t, got.Mappings[0].IsRequired)
	assert.True(t, got.Mappings[1].IsCustom)
	assert.Equal(t, "y", got.Mappings[2].SourceField)

	assert.Len(t, c.Mappings, 4)
}

func TestConfiguration_ReconcileMulti(t *testing.T) {
	scope := Scope{
		{SchemaType: "vehicle", Fields: vehicleFields},
		{SchemaType: "contact", Fields: schema.Fields{{Name: "email", Type: "string"}}},
	}
	c := Configuration{Mappings: []FieldMapping{
		{SourceField: "m", TargetField: "make", SchemaType: "vehicle"},
		{SourceField: "e", TargetField: "email", SchemaType: "fleet"},
		{SourceField: "x", TargetField: schema.CustomFields, IsCustom: true, SchemaType: "fleet"},
	}}

	got, dropped := c.Reconcile(scope)

	require.Len(t, dropped, 1)
	assert.Equal(t, "fleet", dropped[0].SchemaType)
	require.Len(t, got.Mappings, 2)
	assert.Equal(t, "vehicle", got.Mappings[1].SchemaType)
}

func TestConfiguration_ReconcileClaimsUnscopedRows(t *testing.T) {
	scope := Scope{
		{SchemaType: "contact", Fields: schema.Fields{{Name: "email", Type: "string"}}},
		{SchemaType: "vehicle", Fields: vehicleFields},
	}
	c := Configuration{Mappings: []FieldMapping{
		{SourceField: "make", TargetField: "make"},
		{SourceField: "mail", TargetField: "email"},
		{SourceField: "gone", TargetField: "wheels"},
	}}

	got, dropped := c.Reconcile(scope)

	require.Len(t, dropped, 1)
	assert.Equal(t, "wheels", dropped[0].TargetField)
	require.Len(t, got.Mappings, 2)
	assert.Equal(t, "vehicle", got.Mappings[0].SchemaType)
	assert.Equal(t, "contact", got.Mappings[1].SchemaType)
	assert.True(t, Validate(got.Mappings, scope).IsValid())
}
