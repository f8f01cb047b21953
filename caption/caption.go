// Package caption holds the in-memory display state for a two-language
// captioning screen: a capacity-bounded stack of translated lines and an
// arrival-ordered run of transcribed words. It is content-agnostic and
// rendering-agnostic; the display layer subscribes to change callbacks
// and maps the derived weights onto whatever surface it draws.
package caption

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Line is one unit of translated target-language text. Immutable once
// created; evicted from the tail of the LineBuffer past capacity.
type Line struct {
	ID         string
	Text       string
	ReceivedAt time.Time
}

// Word is one fragment of source-language transcription. Despite the
// name it may carry multiple tokens; the buffer never splits text.
type Word struct {
	ID         string
	Text       string
	ReceivedAt time.Time
}

// Entry is one renderable unit handed to the display layer. Scale and
// Opacity are derived from position so the display does not have to
// reimplement the decay law. Waiting marks the placeholder reported
// while a buffer is empty; it is not backed by a Line or Word and does
// not count against capacity.
type Entry struct {
	ID      string
	Text    string
	Scale   float64
	Opacity float64
	Waiting bool
}

func newID(prefix string) string {
	var b [6]byte
	rand.Read(b[:])
	return prefix + "_" + hex.EncodeToString(b[:])
}
