package caption

import (
	"strings"
	"sync"
	"time"
)

// DefaultWaitingWord is shown while no transcription has arrived yet.
const DefaultWaitingWord = "Listening..."

// WordBuffer accumulates transcription fragments oldest first. It
// cannot know when the rendered run outgrows its container -- width
// exists only after layout -- so appends are rendered optimistically
// and the display layer calls CollapseToLast after measuring.
type WordBuffer struct {
	mu       sync.Mutex
	waiting  string
	words    []Word
	onChange func([]Entry)
}

func NewWordBuffer(onChange func([]Entry)) *WordBuffer {
	return &WordBuffer{waiting: DefaultWaitingWord, onChange: onChange}
}

// SetWaitingText overrides the placeholder shown while empty.
func (b *WordBuffer) SetWaitingText(text string) {
	b.mu.Lock()
	b.waiting = text
	b.mu.Unlock()
}

// Append adds text at the tail. Blank text (after trimming) is a
// silent no-op.
func (b *WordBuffer) Append(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.mu.Lock()
	b.words = append(b.words, Word{ID: newID("wd"), Text: text, ReceivedAt: time.Now()})
	view := b.viewLocked()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(view)
	}
}

// CollapseToLast resets the buffer to a singleton holding only the
// most recent word. No-op when the buffer holds one word or none.
func (b *WordBuffer) CollapseToLast() {
	b.mu.Lock()
	if len(b.words) <= 1 {
		b.mu.Unlock()
		return
	}
	b.words = b.words[len(b.words)-1:]
	view := b.viewLocked()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(view)
	}
}

// Clear drops every word and notifies with the waiting placeholder.
func (b *WordBuffer) Clear() {
	b.mu.Lock()
	if len(b.words) == 0 {
		b.mu.Unlock()
		return
	}
	b.words = nil
	view := b.viewLocked()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(view)
	}
}

// Snapshot returns a copy of the current words, oldest first.
func (b *WordBuffer) Snapshot() []Word {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Word, len(b.words))
	copy(out, b.words)
	return out
}

// View returns the renderable entries. Words carry no positional decay;
// an empty buffer yields a single waiting placeholder.
func (b *WordBuffer) View() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewLocked()
}

func (b *WordBuffer) viewLocked() []Entry {
	if len(b.words) == 0 {
		return []Entry{{Text: b.waiting, Scale: 1, Opacity: 1, Waiting: true}}
	}
	out := make([]Entry, len(b.words))
	for i, w := range b.words {
		out[i] = Entry{ID: w.ID, Text: w.Text, Scale: 1, Opacity: 1}
	}
	return out
}
