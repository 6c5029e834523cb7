package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workflow-mapper/internal/diagnostic"
	"workflow-mapper/internal/mapping"
	"workflow-mapper/internal/schema"
)

func testCatalog(t *testing.T) *schema.Catalog {
	t.Helper()

	c, err := schema.NewCatalog(
		schema.CatalogSchema{SchemaType: "vehicle", Fields: schema.Fields{
			{Name: "make", Type: "string", Required: true},
			{Name: "model", Type: "string"},
			{Name: "vin", Type: "string"},
		}},
		schema.CatalogSchema{SchemaType: "contact", Fields: schema.Fields{
			{Name: "vin", Type: "string"},
			{Name: "email", Type: "string", Required: true},
		}},
	)
	require.NoError(t, err)

	return c
}

type changes struct {
	mu      sync.Mutex
	configs []mapping.Configuration
}

func (c *changes) observe(cfg mapping.Configuration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.configs = append(c.configs, cfg)
}

func (c *changes) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.configs)
}

func (c *changes) last() mapping.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.configs[len(c.configs)-1]
}

func TestSession_DebouncedSample(t *testing.T) {
	clk := clockwork.NewFakeClock()
	seen := &changes{}
	s := New(testCatalog(t), WithClock(clk), OnConfigChange(seen.observe))
	defer s.Close()

	require.NoError(t, s.SelectSchemas(context.Background(), "vehicle"))
	base := seen.count()

	s.EditSample(`{"make":`)
	s.EditSample(`{"make":"Kia"`)
	s.EditSample(toyota)

	assert.Equal(t, PhaseParsing, s.State().Phase)

	clk.Advance(DefaultDebounce)

	require.Eventually(t, func() bool { return seen.count() == base+1 }, time.Second, time.Millisecond)
	assert.Equal(t, PhaseValid, s.State().Phase)
	assert.Equal(t, toyota, seen.last().SampleJSON)
	assert.Len(t, seen.last().Mappings, 3)
}

func TestSession_SaveBlocked(t *testing.T) {
	s := New(testCatalog(t), WithClock(clockwork.NewFakeClock()))

	require.NoError(t, s.SelectSchemas(context.Background(), "vehicle"))

	_, err := s.Save()
	require.Error(t, err)
	assert.True(t, diagnostic.IsSaveBlocked(err))

	s.EditSample(`{"model":"Camry"}`)

	_, err = s.Save()
	require.Error(t, err)
	assert.True(t, diagnostic.IsSaveBlocked(err))
	assert.Equal(t, []string{`Required field "make" is not mapped`}, s.Validate())

	require.NoError(t, s.AddMapping(mapping.FieldMapping{SourceField: "model", TargetField: "make"}))

	cfg, err := s.Save()
	require.NoError(t, err)
	assert.Len(t, cfg.Mappings, 2)
}

func TestSession_PendingSampleKeepsParsing(t *testing.T) {
	s := New(testCatalog(t), WithClock(clockwork.NewFakeClock()))
	defer s.Close()

	require.NoError(t, s.SelectSchemas(context.Background(), "vehicle"))
	s.EditSample(toyota)
	require.True(t, s.Flush())
	require.True(t, s.State().CanSave())

	s.EditSample(`{"model":"Camry"}`)
	require.NoError(t, s.AddMapping(mapping.FieldMapping{SourceField: "model", TargetField: "vin"}))

	assert.Equal(t, PhaseParsing, s.State().Phase)
	assert.False(t, s.State().CanSave())

	require.True(t, s.Flush())
	assert.Equal(t, PhaseValid, s.State().Phase)
}

func TestSession_InvalidSampleBlocksSave(t *testing.T) {
	seen := &changes{}
	s := New(testCatalog(t), WithClock(clockwork.NewFakeClock()), OnConfigChange(seen.observe))

	require.NoError(t, s.SelectSchemas(context.Background(), "vehicle"))
	s.EditSample(toyota)
	require.True(t, s.Flush())

	before := seen.count()

	s.EditSample(`{"make"`)
	require.True(t, s.Flush())

	st := s.State()
	assert.Equal(t, PhaseInvalid, st.Phase)
	assert.Equal(t, "Invalid JSON format", st.ParseMessage())
	assert.Len(t, st.Config.Mappings, 3)
	assert.Equal(t, before, seen.count())

	_, err := s.Save()
	assert.True(t, diagnostic.IsSaveBlocked(err))
}

func TestSession_MultiSchema(t *testing.T) {
	s := New(testCatalog(t))
	ctx := context.Background()

	require.NoError(t, s.SelectSchemas(ctx, "vehicle", "contact"))
	s.EditSample(`{"make":"Kia","email":"a@b.c","notes":"x"}`)
	s.Flush()

	st := s.State()
	require.Len(t, st.Config.Mappings, 3)
	assert.Equal(t, "vehicle", st.Config.Mappings[0].SchemaType)
	assert.Equal(t, "contact", st.Config.Mappings[1].SchemaType)
	assert.Equal(t, PhaseValid, st.Phase)

	common, err := s.CommonFields(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"vin"}, common.Names())
}

type failingProvider struct {
	schema.Provider
}

func (failingProvider) Fields(context.Context, string) (schema.Fields, error) {
	return nil, errors.New("connection refused")
}

func TestSession_SchemaUnavailableDegrades(t *testing.T) {
	s := New(failingProvider{})

	s.EditSample(`{"make":"Kia"}`)
	s.Flush()

	err := s.SelectSchemas(context.Background(), "vehicle")
	require.Error(t, err)
	assert.True(t, diagnostic.IsSchemaUnavailable(err))

	st := s.State()
	require.Len(t, st.Config.Mappings, 1)
	assert.True(t, st.Config.Mappings[0].IsCustom)
	assert.Equal(t, PhaseValid, st.Phase)
}

func TestSession_Load(t *testing.T) {
	s := New(testCatalog(t))

	require.NoError(t, s.SelectSchemas(context.Background(), "vehicle"))
	require.NoError(t, s.Load([]byte(`{"sample_json":"{\"brand\":\"Kia\"}","field_mappings":{"brand":"make"}}`)))

	st := s.State()
	assert.Equal(t, PhaseValid, st.Phase)
	assert.Equal(t, "brand", st.Config.Mappings[0].SourceField)

	err := s.Load([]byte(`{"mappings":`))
	assert.True(t, diagnostic.IsInvalidJSON(err))
}

func TestSession_EditsAndRemap(t *testing.T) {
	seen := &changes{}
	s := New(testCatalog(t), OnConfigChange(seen.observe))

	require.NoError(t, s.SelectSchemas(context.Background(), "vehicle"))
	s.EditSample(toyota)
	s.Flush()

	require.NoError(t, s.RemoveMapping(0))
	assert.Equal(t, []string{`Required field "make" is not mapped`}, s.Validate())

	require.Error(t, s.UpdateMapping(10, mapping.FieldMapping{}))

	require.NoError(t, s.RemapAll())
	assert.Empty(t, s.Validate())
	assert.Len(t, seen.last().Mappings, 3)

	require.NoError(t, s.SetDirection(mapping.DirectionOutbound))
	assert.Equal(t, mapping.DirectionOutbound, seen.last().Direction)
}

func TestSession_Suggest(t *testing.T) {
	c, err := schema.NewCatalog(schema.CatalogSchema{SchemaType: "paint", Fields: schema.Fields{
		{Name: "color", Type: "string"},
		{Name: "make", Type: "string"},
	}})
	require.NoError(t, err)

	s := New(c)
	require.NoError(t, s.SelectSchemas(context.Background(), "paint"))
	s.EditSample(`{"colr":"red"}`)
	s.Flush()

	require.True(t, s.State().Config.Mappings[0].IsCustom)

	got, err := s.Suggest(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"color"}, got.Names())

	_, err = s.Suggest(4, 1)
	assert.Error(t, err)
}
