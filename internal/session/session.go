package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"workflow-mapper/internal/diagnostic"
	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/mapping"
	"workflow-mapper/internal/match"
	"workflow-mapper/internal/schema"
)

// Session is one mapping editor bound to a schema provider. It is safe for
// use by the host's UI goroutine together with the debounce timer.
type Session struct {
	provider  schema.Provider
	reducer   *Reducer
	debouncer *Debouncer
	logger    zerolog.Logger
	onChange  func(mapping.Configuration)

	mu    sync.Mutex
	state State
}

type options struct {
	clock    clockwork.Clock
	debounce time.Duration
	logger   zerolog.Logger
	matcher  *match.Matcher
	onChange func(mapping.Configuration)
}

// Option configures a Session.
type Option func(*options)

// WithClock sets the clock driving the sample debounce.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithDebounce sets the quiet period before a sample edit is parsed.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMatcher sets the matcher used for synthesis.
func WithMatcher(m *match.Matcher) Option {
	return func(o *options) { o.matcher = m }
}

// OnConfigChange registers the callback invoked with the configuration after
// every successful edit.
func OnConfigChange(fn func(mapping.Configuration)) Option {
	return func(o *options) { o.onChange = fn }
}

// New creates an empty session. Schema lookups through provider are cached for
// the lifetime of the session.
func New(provider schema.Provider, opts ...Option) *Session {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if _, cached := provider.(*schema.CachedProvider); !cached && provider != nil {
		provider = schema.NewCachedProvider(provider, o.logger)
	}

	s := &Session{
		provider:  provider,
		reducer:   NewReducer(mapping.NewSynthesizer(o.matcher)),
		debouncer: NewDebouncer(o.clock, o.debounce),
		logger:    o.logger,
		onChange:  o.onChange,
	}

	s.state, _ = s.reducer.Reduce(State{}, Migrated{Config: mapping.Configuration{}})

	return s
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Config = st.Config.Clone()

	return st
}

// Dispatch applies an event immediately. While a sample edit waits for its
// debounce the phase stays Parsing.
func (s *Session) Dispatch(e Event) error {
	s.mu.Lock()

	next, err := s.reducer.Reduce(s.state, e)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug().Err(err).Msgf("rejected %T", e)

		return err
	}

	if s.debouncer.Pending() {
		next.Phase = PhaseParsing
	}

	s.state = next
	cfg := next.Config.Clone()
	s.mu.Unlock()

	s.logger.Debug().
		Str("phase", next.Phase.String()).
		Int("mappings", len(cfg.Mappings)).
		Int("violations", len(next.Violations())).
		Msgf("applied %T", e)

	if _, sample := e.(SampleEdited); sample && next.ParseError != nil {
		s.logger.Debug().Err(next.ParseError).Msg("sample does not parse")
		return nil
	}

	if s.onChange != nil {
		s.onChange(cfg)
	}

	return nil
}

// Load restores previously saved state in either the current or the legacy shape.
func (s *Session) Load(saved []byte) error {
	cfg, err := mapping.Migrate(saved)
	if err != nil {
		return err
	}

	s.debouncer.Stop()

	return s.Dispatch(Migrated{Config: cfg})
}

// EditSample records new sample text. It is parsed once no further edit
// arrives within the debounce period.
func (s *Session) EditSample(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SampleText = text
	s.state.Phase = PhaseParsing

	s.debouncer.Trigger(func() {
		if err := s.Dispatch(SampleEdited{Text: text}); err != nil {
			s.logger.Error().Err(err).Msg("failed to apply sample edit")
		}
	})
}

// Flush parses a pending sample edit now. It returns false if none was pending.
func (s *Session) Flush() bool {
	return s.debouncer.Flush()
}

// AddMapping appends a row.
func (s *Session) AddMapping(m mapping.FieldMapping) error {
	return s.Dispatch(MappingAdded{Mapping: m})
}

// UpdateMapping replaces the row at index.
func (s *Session) UpdateMapping(index int, m mapping.FieldMapping) error {
	return s.Dispatch(MappingUpdated{Index: index, Mapping: m})
}

// RemoveMapping deletes the row at index.
func (s *Session) RemoveMapping(index int) error {
	return s.Dispatch(MappingRemoved{Index: index})
}

// RemapAll regenerates every row from the current sample.
func (s *Session) RemapAll() error {
	s.debouncer.Flush()
	return s.Dispatch(RemapAll{})
}

// SetDirection switches the mapping direction.
func (s *Session) SetDirection(d mapping.Direction) error {
	return s.Dispatch(DirectionChanged{Direction: d})
}

// SelectSchemas loads the fields of the given schema types and makes them the
// mapping target. A schema that cannot be loaded contributes no fields, so its
// rows become custom; the first such error is returned after the scope has
// been applied.
func (s *Session) SelectSchemas(ctx context.Context, schemaTypes ...string) error {
	scope := make(mapping.Scope, 0, len(schemaTypes))

	var firstErr error

	for _, st := range schemaTypes {
		var fields schema.Fields

		if s.provider != nil {
			fs, err := s.provider.Fields(ctx, st)
			if err != nil && firstErr == nil {
				firstErr = err
			}

			fields = fs
		} else if firstErr == nil {
			firstErr = diagnostic.SchemaUnavailable(st, errors.New("no schema provider"))
		}

		scope = append(scope, mapping.SchemaScope{SchemaType: st, Fields: fields})
	}

	if err := s.Dispatch(SchemasChanged{Scope: scope}); err != nil {
		return err
	}

	if dropped := s.State().Dropped; len(dropped) > 0 {
		s.logger.Info().Int("dropped", len(dropped)).Strs("schema_types", schemaTypes).Msg("removed mappings with vanished targets")
	}

	return firstErr
}

// Available lists the schemas selectable for a workflow type.
func (s *Session) Available(ctx context.Context, workflowType string) ([]schema.Summary, error) {
	if s.provider == nil {
		return nil, diagnostic.SchemaUnavailable(workflowType, errors.New("no schema provider"))
	}

	return s.provider.Available(ctx, workflowType)
}

// CommonFields returns the fields shared by the selected schemas, the
// candidates for an export reference field.
func (s *Session) CommonFields(ctx context.Context) (schema.Fields, error) {
	types := s.State().Scope.SchemaTypes()
	if len(types) < 2 {
		return schema.Fields{}, nil
	}

	if s.provider == nil {
		return nil, diagnostic.SchemaUnavailable(types[0], errors.New("no schema provider"))
	}

	return s.provider.CommonFields(ctx, types)
}

// Suggest ranks the schema fields for the row at index by name similarity
// and type compatibility, best first, keeping those scoring at least
// match.DefaultMinScore. Only the top n are returned when n > 0.
func (s *Session) Suggest(index, n int) (match.CandidateList, error) {
	st := s.State()

	if index < 0 || index >= len(st.Config.Mappings) {
		return nil, fmt.Errorf("mapping index %d out of range [0,%d)", index, len(st.Config.Mappings))
	}

	row := st.Config.Mappings[index]

	var source extract.Descriptor

	for _, d := range st.Fields {
		if d.Path == row.SourceField {
			source = d
			break
		}
	}

	if source.Path == "" {
		return match.CandidateList{}, nil
	}

	var candidates schema.Fields

	for _, sc := range st.Scope {
		if !st.Scope.Multi() || row.SchemaType == "" || sc.SchemaType == row.SchemaType {
			candidates = append(candidates, sc.Fields...)
		}
	}

	ranked := match.Rank(source, candidates).AboveThreshold(match.DefaultMinScore)
	if n > 0 {
		ranked = ranked.Top(n)
	}

	return ranked, nil
}

// Validate returns the blocking violations of the current configuration.
func (s *Session) Validate() []string {
	return s.State().Violations()
}

// Save returns the configuration to persist, or a SaveBlocked error while a
// sample edit is pending, the sample does not parse or violations remain.
func (s *Session) Save() (mapping.Configuration, error) {
	s.debouncer.Flush()

	st := s.State()
	if st.CanSave() {
		return st.Config, nil
	}

	violations := st.Violations()
	if st.ParseError != nil {
		violations = append([]string{st.ParseMessage()}, violations...)
	}

	if len(violations) == 0 {
		violations = []string{"nothing to save"}
	}

	return mapping.Configuration{}, diagnostic.SaveBlocked(violations)
}

// Close discards a pending sample edit.
func (s *Session) Close() {
	s.debouncer.Stop()
}
