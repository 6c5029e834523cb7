package session

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(v string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.calls = append(r.calls, v)
	}
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}

func TestDebouncer_LastWriteWins(t *testing.T) {
	clk := clockwork.NewFakeClock()
	d := NewDebouncer(clk, 0)
	rec := &recorder{}

	assert.Equal(t, DefaultDebounce, d.Delay())

	d.Trigger(rec.record("a"))
	clk.Advance(200 * time.Millisecond)
	d.Trigger(rec.record("ab"))
	clk.Advance(200 * time.Millisecond)
	d.Trigger(rec.record("abc"))
	clk.Advance(499 * time.Millisecond)

	assert.Empty(t, rec.get())
	assert.True(t, d.Pending())

	clk.Advance(time.Millisecond)

	require.Eventually(t, func() bool { return len(rec.get()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"abc"}, rec.get())
	assert.False(t, d.Pending())

	clk.Advance(time.Second)
	assert.Equal(t, []string{"abc"}, rec.get())
}

func TestDebouncer_Flush(t *testing.T) {
	clk := clockwork.NewFakeClock()
	d := NewDebouncer(clk, 100*time.Millisecond)
	rec := &recorder{}

	assert.False(t, d.Flush())

	d.Trigger(rec.record("x"))
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"x"}, rec.get())

	clk.Advance(time.Second)
	assert.Equal(t, []string{"x"}, rec.get())
}

func TestDebouncer_Stop(t *testing.T) {
	clk := clockwork.NewFakeClock()
	d := NewDebouncer(clk, 100*time.Millisecond)
	rec := &recorder{}

	d.Trigger(rec.record("x"))
	assert.True(t, d.Stop())
	assert.False(t, d.Stop())

	clk.Advance(time.Second)
	assert.Empty(t, rec.get())
}
