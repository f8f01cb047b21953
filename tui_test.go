package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mbongaa/Jamaa-Shifa/caption"
	"github.com/Mbongaa/Jamaa-Shifa/prefs"
)

func sized(t *testing.T, m tuiModel, w, h int) tuiModel {
	t.Helper()
	model, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return model.(tuiModel)
}

func TestOverflowCollapseAfterLayoutCheck(t *testing.T) {
	wb := caption.NewWordBuffer(nil)
	m := newTUIModel(prefs.Default(), "", wb, nil)
	m = sized(t, m, 20, 10) // word panel width 18

	wb.Append(strings.Repeat("a", 10))
	wb.Append(strings.Repeat("b", 10)) // joined run is 21 cells

	model, _ := m.Update(WordsMsg{Entries: wb.View()})
	m = model.(tuiModel)
	// The optimistic render keeps both words until the deferred check.
	if len(wb.Snapshot()) != 2 {
		t.Fatalf("words = %d before layout check, want 2", len(wb.Snapshot()))
	}

	model, _ = m.Update(layoutCheckMsg{})
	_ = model

	snap := wb.Snapshot()
	if len(snap) != 1 || snap[0].Text != strings.Repeat("b", 10) {
		t.Fatalf("words after layout check = %v, want only the newest", snap)
	}
}

func TestNoCollapseWhileContentFits(t *testing.T) {
	wb := caption.NewWordBuffer(nil)
	m := newTUIModel(prefs.Default(), "", wb, nil)
	m = sized(t, m, 80, 10)

	wb.Append("korte")
	wb.Append("regel")

	model, _ := m.Update(WordsMsg{Entries: wb.View()})
	model, _ = model.(tuiModel).Update(layoutCheckMsg{})
	_ = model

	if len(wb.Snapshot()) != 2 {
		t.Errorf("fitting content collapsed: %v", wb.Snapshot())
	}
}

func TestNoCollapseWithTranscriptHidden(t *testing.T) {
	wb := caption.NewWordBuffer(nil)
	pf := prefs.Default()
	pf.ShowTranscript = false
	m := newTUIModel(pf, "", wb, nil)
	m = sized(t, m, 10, 10)

	wb.Append(strings.Repeat("x", 30))
	wb.Append(strings.Repeat("y", 30))

	model, _ := m.Update(WordsMsg{Entries: wb.View()})
	model, _ = model.(tuiModel).Update(layoutCheckMsg{})
	_ = model

	if len(wb.Snapshot()) != 2 {
		t.Error("hidden transcript still collapsed the buffer")
	}
}

func TestJoinWords(t *testing.T) {
	joined, waiting := joinWords([]caption.Entry{{Text: caption.DefaultWaitingWord, Waiting: true}})
	if !waiting || joined != caption.DefaultWaitingWord {
		t.Errorf("waiting view: joined=%q waiting=%v", joined, waiting)
	}

	joined, waiting = joinWords([]caption.Entry{{Text: "een"}, {Text: "twee"}})
	if waiting || joined != "een twee" {
		t.Errorf("joined=%q waiting=%v, want %q", joined, waiting, "een twee")
	}
}

func TestOpacityGrayRamp(t *testing.T) {
	for _, theme := range []string{"dark", "light"} {
		if opacityGray(1.0, theme) == opacityGray(0.15, theme) {
			t.Errorf("%s theme: full and floor opacity map to same gray", theme)
		}
	}
	if opacityGray(1.0, "dark") != "255" {
		t.Errorf("dark full opacity = %s, want 255", opacityGray(1.0, "dark"))
	}
	if opacityGray(1.0, "light") != "232" {
		t.Errorf("light full opacity = %s, want 232", opacityGray(1.0, "light"))
	}
	// Out-of-range inputs clamp instead of leaving the 232..255 ramp.
	if g := opacityGray(2.0, "dark"); g != "255" {
		t.Errorf("clamped high = %s, want 255", g)
	}
	if g := opacityGray(-1.0, "dark"); g != "232" {
		t.Errorf("clamped low = %s, want 232", g)
	}
}

func TestKeyTogglesTheme(t *testing.T) {
	m := newTUIModel(prefs.Default(), "", caption.NewWordBuffer(nil), nil)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if got := model.(tuiModel).prefs.Theme; got != "light" {
		t.Errorf("theme after toggle = %q, want light", got)
	}
	model, _ = model.(tuiModel).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if got := model.(tuiModel).prefs.Theme; got != "dark" {
		t.Errorf("theme after second toggle = %q, want dark", got)
	}
}
