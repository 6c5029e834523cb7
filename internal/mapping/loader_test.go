package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workflow-mapper/internal/diagnostic"
	"workflow-mapper/internal/schema"
)

func sampleConfiguration() Configuration {
	return Configuration{
		SampleJSON: `{"make":"Toyota","specs":{"color":"red"}}`,
		Direction:  DirectionInbound,
		Mappings: []FieldMapping{
			{SourceField: "make", TargetField: "make", DataType: "string", IsRequired: true, Transformation: TransformDirect},
			{
				SourceField:    "specs.color",
				TargetField:    schema.CustomFields,
				DataType:       "string",
				IsCustom:       true,
				CustomFieldKey: "color",
				Transformation: TransformCustom,
			},
		},
	}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"mapping.json", "mapping.yaml", "mapping.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(sampleConfiguration(), path))

			got, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, sampleConfiguration(), got)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseYAML_Defaults(t *testing.T) {
	c, err := ParseYAML([]byte(`
mappings:
  - source_field: owner.name
    target_field: custom_fields
  - source_field: vin
    target_field: vin
`))
	require.NoError(t, err)
	require.Len(t, c.Mappings, 2)

	assert.True(t, c.Mappings[0].IsCustom)
	assert.Equal(t, "name", c.Mappings[0].CustomFieldKey)
	assert.Equal(t, TransformCustom, c.Mappings[0].Transformation)
	assert.Equal(t, TransformDirect, c.Mappings[1].Transformation)
}

func TestMigrate_Legacy(t *testing.T) {
	c, err := Migrate([]byte(`{
		"sample_json": "{\"z\":1}",
		"field_mappings": {"zeta": "vin", "alpha": "custom_fields", "mid": "make"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, `{"z":1}`, c.SampleJSON)
	require.Len(t, c.Mappings, 3)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, []string{
		c.Mappings[0].SourceField, c.Mappings[1].SourceField, c.Mappings[2].SourceField,
	})
	assert.True(t, c.Mappings[1].IsCustom)
	assert.Equal(t, "alpha", c.Mappings[1].CustomFieldKey)
	assert.Equal(t, "make", c.Mappings[2].TargetField)
}

func TestMigrate_CurrentShape(t *testing.T) {
	c, err := Migrate([]byte(`{"mappings":[{"source_field":"a","target_field":"b"}],"sample_json":"{}"}`))
	require.NoError(t, err)

	require.Len(t, c.Mappings, 1)
	assert.Equal(t, TransformDirect, c.Mappings[0].Transformation)
	assert.Equal(t, "{}", c.SampleJSON)
}

func TestMigrate_Empty(t *testing.T) {
	for _, in := range []string{"", "  ", "{}"} {
		c, err := Migrate([]byte(in))
		require.NoError(t, err, in)
		assert.NotNil(t, c.Mappings, in)
		assert.True(t, c.Empty(), in)
	}
}

func TestMigrate_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mappings": [`), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, diagnostic.IsInvalidJSON(err))
}
