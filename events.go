package main

import (
	"github.com/Mbongaa/Jamaa-Shifa/caption"
	"github.com/Mbongaa/Jamaa-Shifa/feed"
)

// DisplaySink abstracts the display layer so both the Bubble Tea TUI
// and the headless stdin mode receive the same caption and connection
// events.
type DisplaySink interface {
	LinesChanged(entries []caption.Entry)
	WordsChanged(entries []caption.Entry)
	ConnectionState(state feed.State, label string)
	Status(text string)
}
