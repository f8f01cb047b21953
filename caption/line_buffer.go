package caption

import (
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is how many translated lines stay visible.
const DefaultCapacity = 15

// DefaultWaitingLine is shown while no translation has arrived yet.
const DefaultWaitingLine = "Waiting for translation..."

// Scale returns the display scale for the line at position i (0 =
// newest). The newest line dominates; older lines shrink by position
// with a 0.5 floor.
func Scale(i int) float64 {
	if i == 0 {
		return 1.6
	}
	s := 1 - 0.12*float64(i)
	if s < 0.5 {
		s = 0.5
	}
	return s
}

// Opacity returns the display opacity for position i, fading by
// position with a 0.15 floor so old lines never vanish entirely.
func Opacity(i int) float64 {
	o := 1 - 0.10*float64(i)
	if o < 0.15 {
		o = 0.15
	}
	return o
}

// LineBuffer keeps the most recent translated lines, newest first.
// Arrival order is the only ordering signal; timestamps are carried for
// diagnostics, never for sorting.
type LineBuffer struct {
	mu       sync.Mutex
	capacity int
	waiting  string
	lines    []Line
	onChange func([]Entry)
}

// NewLineBuffer builds a buffer holding at most capacity lines
// (DefaultCapacity when <= 0). onChange, if non-nil, receives the full
// display view after every mutation.
func NewLineBuffer(capacity int, onChange func([]Entry)) *LineBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LineBuffer{
		capacity: capacity,
		waiting:  DefaultWaitingLine,
		onChange: onChange,
	}
}

// SetWaitingText overrides the placeholder shown while empty.
func (b *LineBuffer) SetWaitingText(text string) {
	b.mu.Lock()
	b.waiting = text
	b.mu.Unlock()
}

// Append inserts text at the front and evicts the oldest lines beyond
// capacity. Blank text (after trimming) is a silent no-op.
func (b *LineBuffer) Append(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.mu.Lock()
	b.lines = append([]Line{{ID: newID("ln"), Text: text, ReceivedAt: time.Now()}}, b.lines...)
	if len(b.lines) > b.capacity {
		b.lines = b.lines[:b.capacity]
	}
	view := b.viewLocked()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(view)
	}
}

// Clear drops every line and notifies with the waiting placeholder.
func (b *LineBuffer) Clear() {
	b.mu.Lock()
	if len(b.lines) == 0 {
		b.mu.Unlock()
		return
	}
	b.lines = nil
	view := b.viewLocked()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(view)
	}
}

// Snapshot returns a copy of the current lines, newest first.
func (b *LineBuffer) Snapshot() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// View returns the renderable entries with per-position weights. An
// empty buffer yields a single waiting placeholder instead of nothing.
func (b *LineBuffer) View() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewLocked()
}

func (b *LineBuffer) viewLocked() []Entry {
	if len(b.lines) == 0 {
		return []Entry{{Text: b.waiting, Scale: Scale(0), Opacity: Opacity(0), Waiting: true}}
	}
	out := make([]Entry, len(b.lines))
	for i, ln := range b.lines {
		out[i] = Entry{ID: ln.ID, Text: ln.Text, Scale: Scale(i), Opacity: Opacity(i)}
	}
	return out
}
