package schema

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"workflow-mapper/internal/diagnostic"
)

// CachedProvider fetches each schema type at most once per session.
// Failed lookups are not cached so a later retry can succeed.
type CachedProvider struct {
	next   Provider
	logger zerolog.Logger

	mu     sync.Mutex
	fields map[string]Fields
	common map[string]Fields
}

// NewCachedProvider wraps next with session caching.
func NewCachedProvider(next Provider, logger zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		logger: logger,
		fields: map[string]Fields{},
		common: map[string]Fields{},
	}
}

// Fields implements Provider. Errors are wrapped as SchemaUnavailable.
func (p *CachedProvider) Fields(ctx context.Context, schemaType string) (Fields, error) {
	p.mu.Lock()
	cached, ok := p.fields[schemaType]
	p.mu.Unlock()

	if ok {
		return slices.Clone(cached), nil
	}

	fs, err := p.next.Fields(ctx, schemaType)
	if err != nil {
		p.logger.Warn().Err(err).Str("schema_type", schemaType).Msg("schema fields unavailable")
		return nil, diagnostic.SchemaUnavailable(schemaType, err)
	}

	p.logger.Debug().Str("schema_type", schemaType).Int("fields", len(fs)).Msg("schema fields cached")

	p.mu.Lock()
	p.fields[schemaType] = fs
	p.mu.Unlock()

	return slices.Clone(fs), nil
}

// Available implements Provider. Schema listings are not cached.
func (p *CachedProvider) Available(ctx context.Context, workflowType string) ([]Summary, error) {
	return p.next.Available(ctx, workflowType)
}

// CommonFields implements Provider.
func (p *CachedProvider) CommonFields(ctx context.Context, schemaTypes []string) (Fields, error) {
	key := strings.Join(schemaTypes, "\x00")

	p.mu.Lock()
	cached, ok := p.common[key]
	p.mu.Unlock()

	if ok {
		return slices.Clone(cached), nil
	}

	fs, err := p.next.CommonFields(ctx, schemaTypes)
	if err != nil {
		p.logger.Warn().Err(err).Strs("schema_types", schemaTypes).Msg("common fields unavailable")
		return nil, diagnostic.SchemaUnavailable(strings.Join(schemaTypes, ","), err)
	}

	p.mu.Lock()
	p.common[key] = fs
	p.mu.Unlock()

	return slices.Clone(fs), nil
}

// Invalidate drops every cached entry, e.g. when the host reloads schemas.
func (p *CachedProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fields = map[string]Fields{}
	p.common = map[string]Fields{}
}
