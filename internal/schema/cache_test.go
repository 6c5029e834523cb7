package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workflow-mapper/internal/diagnostic"
)

type countingProvider struct {
	calls map[string]int
	fail  bool
}

func (p *countingProvider) Fields(_ context.Context, schemaType string) (Fields, error) {
	p.calls[schemaType]++
	if p.fail {
		return nil, errors.New("backend down")
	}

	return Fields{{Name: schemaType + "_id"}, {Name: "shared"}}, nil
}

func (p *countingProvider) Available(context.Context, string) ([]Summary, error) {
	return []Summary{{SchemaType: "a"}}, nil
}

func (p *countingProvider) CommonFields(ctx context.Context, schemaTypes []string) (Fields, error) {
	p.calls["common"]++

	all := make([]Fields, 0, len(schemaTypes))
	for _, st := range schemaTypes {
		fs, err := p.Fields(ctx, st)
		if err != nil {
			return nil, err
		}

		all = append(all, fs)
	}

	return Common(all...), nil
}

func TestCachedProvider_FetchOnce(t *testing.T) {
	backend := &countingProvider{calls: map[string]int{}}
	p := NewCachedProvider(backend, zerolog.Nop())
	ctx := context.Background()

	for range 3 {
		fs, err := p.Fields(ctx, "vehicle")
		require.NoError(t, err)
		assert.Equal(t, []string{"vehicle_id", "shared"}, fs.Names())
	}

	assert.Equal(t, 1, backend.calls["vehicle"])

	common, err := p.CommonFields(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, common.Names())

	_, err = p.CommonFields(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls["common"])

	p.Invalidate()

	_, err = p.Fields(ctx, "vehicle")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls["vehicle"])
}

func TestCachedProvider_ReturnsCopies(t *testing.T) {
	p := NewCachedProvider(&countingProvider{calls: map[string]int{}}, zerolog.Nop())
	ctx := context.Background()

	fs, err := p.Fields(ctx, "vehicle")
	require.NoError(t, err)
	fs[0].Name = "mutated"

	again, err := p.Fields(ctx, "vehicle")
	require.NoError(t, err)
	assert.Equal(t, "vehicle_id", again[0].Name)
}

func TestCachedProvider_FailureNotCached(t *testing.T) {
	backend := &countingProvider{calls: map[string]int{}, fail: true}
	p := NewCachedProvider(backend, zerolog.Nop())
	ctx := context.Background()

	_, err := p.Fields(ctx, "vehicle")
	require.Error(t, err)
	assert.True(t, diagnostic.IsSchemaUnavailable(err))

	backend.fail = false

	fs, err := p.Fields(ctx, "vehicle")
	require.NoError(t, err)
	assert.Len(t, fs, 2)
	assert.Equal(t, 2, backend.calls["vehicle"])
}
