package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mbongaa/Jamaa-Shifa/caption"
	"github.com/Mbongaa/Jamaa-Shifa/feed"
)

// Headless test mode: no TTY, no server. Every stdin line is fed to the
// connection as one frame, so shell scripts can drive the engine and
// assert on the printed views. SLEEP <ms> pauses the feed, QUIT ends it.

type headlessSink struct{}

func entryTexts(entries []caption.Entry) string {
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return strings.Join(texts, " | ")
}

func (headlessSink) LinesChanged(entries []caption.Entry) {
	fmt.Printf("LINES\t%s\n", entryTexts(entries))
}

func (headlessSink) WordsChanged(entries []caption.Entry) {
	fmt.Printf("WORDS\t%s\n", entryTexts(entries))
}

func (headlessSink) ConnectionState(state feed.State, label string) {
	fmt.Printf("STATE\t%s\t%s\n", state, label)
}

func (headlessSink) Status(text string) {
	fmt.Printf("STATUS\t%s\n", text)
}

type stdinTransport struct {
	scanner *bufio.Scanner
	done    chan<- struct{}
}

func (t *stdinTransport) Recv(_ context.Context) ([]byte, error) {
	for t.scanner.Scan() {
		line := strings.TrimSpace(t.scanner.Text())
		switch {
		case line == "":
			continue
		case line == "QUIT":
			close(t.done)
			return nil, io.EOF
		case strings.HasPrefix(line, "SLEEP "):
			if ms, err := strconv.Atoi(line[6:]); err == nil {
				time.Sleep(time.Duration(ms) * time.Millisecond)
			}
		default:
			return []byte(line), nil
		}
	}
	close(t.done)
	return nil, io.EOF
}

func (t *stdinTransport) Close() error { return nil }

// stdinDial hands out the stdin transport exactly once; the retry loop
// gets a refusal afterwards because stdin cannot be reopened.
func stdinDial(done chan<- struct{}) feed.DialFunc {
	used := false
	return func(_ context.Context) (feed.Transport, error) {
		if used {
			return nil, io.EOF
		}
		used = true
		return &stdinTransport{scanner: bufio.NewScanner(os.Stdin), done: done}, nil
	}
}
