package schema

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
schemas:
  - schema_type: vehicle
    display_name: Vehicle
    workflows: [import]
    fields:
      - field_name: vin
        field_type: string
        is_required: true
      - field_name: plate_no
        field_type: string
      - field_name: owner_id
        field_type: string
  - schema_type: owner
    fields:
      - field_name: owner_id
        field_type: string
        is_required: true
      - field_name: name
        field_type: string
        enum_values: [a, b]
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	ctx := context.Background()

	fs, err := c.Fields(ctx, "vehicle")
	require.NoError(t, err)
	assert.Equal(t, []string{"vin", "plate_no", "owner_id"}, fs.Names())
	assert.True(t, fs[0].Required)

	owner, err := c.Fields(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, owner[1].EnumValues)

	_, err = c.Fields(ctx, "missing")
	require.Error(t, err)

	available, err := c.Available(ctx, "export")
	require.NoError(t, err)
	assert.Equal(t, []Summary{{SchemaType: "owner", DisplayName: "owner"}}, available)

	available, err = c.Available(ctx, "import")
	require.NoError(t, err)
	assert.Len(t, available, 2)

	common, err := c.CommonFields(ctx, []string{"vehicle", "owner"})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner_id"}, common.Names())
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte("schemas:\n  - schema_type: a\n  - schema_type: a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate schema")

	_, err = ParseCatalog([]byte("schemas: ["))
	require.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	fs, err := c.Fields(context.Background(), "owner")
	require.NoError(t, err)
	assert.Len(t, fs, 2)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
