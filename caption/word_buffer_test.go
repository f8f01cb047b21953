package caption

import "testing"

func TestWordBufferArrivalOrder(t *testing.T) {
	b := NewWordBuffer(nil)
	b.Append("as")
	b.Append("salamu")
	b.Append("alaykum")

	snap := b.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	if snap[0].Text != "as" || snap[2].Text != "alaykum" {
		t.Errorf("order = [%s %s %s], want oldest first", snap[0].Text, snap[1].Text, snap[2].Text)
	}
}

func TestWordBufferCollapseToLast(t *testing.T) {
	b := NewWordBuffer(nil)
	b.Append("w1")
	b.Append("w2")
	b.Append("w3")
	b.CollapseToLast()

	snap := b.Snapshot()
	if len(snap) != 1 || snap[0].Text != "w3" {
		t.Fatalf("snapshot after collapse = %v, want [w3]", snap)
	}

	// Growth continues from the singleton.
	b.Append("w4")
	snap = b.Snapshot()
	if len(snap) != 2 || snap[1].Text != "w4" {
		t.Errorf("snapshot = %v, want [w3 w4]", snap)
	}
}

func TestWordBufferCollapseOnEmptyOrSingleton(t *testing.T) {
	calls := 0
	b := NewWordBuffer(func([]Entry) { calls++ })
	b.CollapseToLast()
	if calls != 0 {
		t.Error("collapse on empty buffer notified")
	}
	b.Append("solo")
	calls = 0
	b.CollapseToLast()
	if calls != 0 {
		t.Error("collapse on singleton notified")
	}
	if snap := b.Snapshot(); len(snap) != 1 || snap[0].Text != "solo" {
		t.Errorf("snapshot = %v, want [solo]", snap)
	}
}

func TestWordBufferBlankAppendIsNoop(t *testing.T) {
	b := NewWordBuffer(nil)
	b.Append("woord")
	b.Append("   ")
	b.Append("\n")
	if snap := b.Snapshot(); len(snap) != 1 {
		t.Errorf("snapshot = %v, want [woord]", snap)
	}
}

func TestWordBufferWaitingPlaceholder(t *testing.T) {
	b := NewWordBuffer(nil)
	view := b.View()
	if len(view) != 1 || !view[0].Waiting || view[0].Text != DefaultWaitingWord {
		t.Fatalf("empty view = %v, want waiting placeholder", view)
	}
	b.Append("x")
	b.Clear()
	view = b.View()
	if len(view) != 1 || !view[0].Waiting {
		t.Errorf("view after Clear = %v, want waiting placeholder", view)
	}
}
