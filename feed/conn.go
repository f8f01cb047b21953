// Package feed maintains the single streaming connection that drives
// the captioning display: dial, classify inbound frames, route text to
// the caption buffers, and ride out connection loss with a fixed
// 3 second retry loop. The display has no operator, so nothing here is
// ever fatal; every failure degrades to "retrying".
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Mbongaa/Jamaa-Shifa/log"
)

// DefaultRetryInterval is the constant pause between reconnect
// attempts. Deliberately not exponential: on the local network the
// display serves, continuity beats connection-storm avoidance.
const DefaultRetryInterval = 3 * time.Second

// Transport is one established feed connection, receive-only.
type Transport interface {
	Recv(ctx context.Context) ([]byte, error)
	Close() error
}

// DialFunc opens a Transport. Conn calls it once per attempt.
type DialFunc func(ctx context.Context) (Transport, error)

// TextSink receives routed caption text. Both caption buffers satisfy it.
type TextSink interface {
	Append(text string)
}

// Config wires a Conn to its collaborators.
type Config struct {
	URL            string
	SourceLanguage string        // transcription frames in this language go to Words
	TargetLanguage string        // translation frames in this language go to Lines
	RetryInterval  time.Duration // 0 means DefaultRetryInterval
	Dial           DialFunc      // nil means DialWebSocket(URL)

	Words TextSink
	Lines TextSink

	// OnState receives every state transition with a display label.
	OnState func(state State, label string)
	// OnStatus receives transient notices (a dropped frame, say) that
	// change no state.
	OnStatus func(label string)
}

// Conn is the one logical feed connection of a display session.
//
// State machine: Idle -connect-> Connecting -open-> Connected
// -close/error-> Disconnected -timer-> Connecting. At most one retry
// timer is outstanding; arming a new one stops the old, and reaching
// Connected stops any pending one.
type Conn struct {
	cfg  Config
	dial DialFunc

	mu     sync.Mutex
	state  State
	gen    int // bumped per attempt; stale goroutines check and bail
	retry  *time.Timer
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg Config) *Conn {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	dial := cfg.Dial
	if dial == nil {
		dial = DialWebSocket(cfg.URL)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Conn{cfg: cfg, dial: dial, state: Idle, ctx: ctx, cancel: cancel}
}

// State returns the current connection state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect starts a connection attempt. No-op while already connecting
// or connected, so callers never stack attempts.
func (c *Conn) Connect() {
	c.mu.Lock()
	if c.closed || c.state == Connecting || c.state == Connected {
		c.mu.Unlock()
		return
	}
	c.stopRetryLocked()
	c.state = Connecting
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.notifyState(Connecting, "connecting to "+c.cfg.URL)
	go c.attempt(gen)
}

// NudgeReconnect forces an immediate attempt unless already connected
// or mid-connect. Wired to foreground/visibility signals; idempotent.
func (c *Conn) NudgeReconnect() {
	c.mu.Lock()
	if c.closed || c.state == Connecting || c.state == Connected {
		c.mu.Unlock()
		return
	}
	c.stopRetryLocked()
	c.mu.Unlock()
	c.Connect()
}

// Close tears the connection down for good: the retry loop stops and no
// further callbacks fire.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.gen++
	c.stopRetryLocked()
	c.state = Idle
	c.mu.Unlock()
	c.cancel()
	return nil
}

func (c *Conn) attempt(gen int) {
	t, err := c.dial(c.ctx)
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		if err == nil {
			t.Close()
		}
		return
	}
	if err != nil {
		c.state = Disconnected
		c.scheduleRetryLocked()
		c.mu.Unlock()
		log.Warnf("feed connect failed: %v", err)
		c.notifyState(Disconnected, fmt.Sprintf("connection failed, retrying in %s", c.cfg.RetryInterval))
		return
	}
	c.stopRetryLocked()
	c.state = Connected
	c.mu.Unlock()
	c.notifyState(Connected, "connected")
	c.readLoop(gen, t)
}

func (c *Conn) readLoop(gen int, t Transport) {
	defer t.Close()
	for {
		data, err := t.Recv(c.ctx)
		if err != nil {
			c.mu.Lock()
			if c.closed || gen != c.gen {
				c.mu.Unlock()
				return
			}
			c.state = Disconnected
			c.scheduleRetryLocked()
			c.mu.Unlock()
			log.Warnf("feed lost: %v", err)
			c.notifyState(Disconnected, fmt.Sprintf("disconnected, retrying in %s", c.cfg.RetryInterval))
			return
		}
		c.route(data)
	}
}

// route classifies one frame by (type, language) and hands its text to
// the owning buffer. Unknown combinations are ignored, not errored, so
// future message shapes never break the display.
func (c *Conn) route(data []byte) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		log.MessageDropped(err.Error())
		c.notifyStatus("dropped malformed message")
		return
	}
	switch {
	case m.Type == TypeTranscription && m.Language == c.cfg.SourceLanguage:
		log.CaptionText(m.Type, m.Language, m.Text)
		if c.cfg.Words != nil {
			c.cfg.Words.Append(m.Text)
		}
	case m.Type == TypeTranslation && m.Language == c.cfg.TargetLanguage:
		log.CaptionText(m.Type, m.Language, m.Text)
		if c.cfg.Lines != nil {
			c.cfg.Lines.Append(m.Text)
		}
	}
}

func (c *Conn) scheduleRetryLocked() {
	c.stopRetryLocked()
	c.retry = time.AfterFunc(c.cfg.RetryInterval, func() {
		c.mu.Lock()
		c.retry = nil
		closed := c.closed
		c.mu.Unlock()
		if !closed {
			c.Connect()
		}
	})
}

func (c *Conn) stopRetryLocked() {
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
}

func (c *Conn) notifyState(s State, label string) {
	log.FeedState(s.String(), label)
	if c.cfg.OnState != nil {
		c.cfg.OnState(s, label)
	}
}

func (c *Conn) notifyStatus(label string) {
	if c.cfg.OnStatus != nil {
		c.cfg.OnStatus(label)
	}
}
