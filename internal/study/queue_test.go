package study

import (
	"testing"

	"github.com/rsinha/flashdown/internal/deck"
)

func entryFor(id string) *Entry {
	return newEntry(deck.Card{ID: id, Term: id, Definition: "def " + id}, KindFlip, id, "def "+id, nil, 0)
}

func queueIDs(q *queue) []string {
	var ids []string
	for _, e := range q.entries {
		ids = append(ids, e.Card.ID)
	}
	return ids
}

func TestInsertAt(t *testing.T) {
	var q queue
	q.push(entryFor("a"))
	q.push(entryFor("b"))
	q.push(entryFor("c"))

	q.insertAt(entryFor("x"), 2)
	got := queueIDs(&q)
	want := []string{"a", "b", "x", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("queue = %v, want %v", got, want)
		}
	}
}

func TestInsertAtClamped(t *testing.T) {
	var q queue
	q.push(entryFor("a"))

	// Position past the end lands at the end.
	q.insertAt(entryFor("x"), 10)
	if got := queueIDs(&q); got[len(got)-1] != "x" {
		t.Errorf("queue = %v, want x last", got)
	}

	// Negative position lands at the front.
	q.insertAt(entryFor("y"), -1)
	if got := queueIDs(&q); got[0] != "y" {
		t.Errorf("queue = %v, want y first", got)
	}
}

func TestPopHeadEmpty(t *testing.T) {
	var q queue
	if e := q.popHead(); e != nil {
		t.Errorf("popHead on empty queue = %v, want nil", e)
	}
	if e := q.head(); e != nil {
		t.Errorf("head on empty queue = %v, want nil", e)
	}
}

func TestReissueFreshInstance(t *testing.T) {
	e := entryFor("a")
	e.scored = true

	r := e.reissue()
	if r.InstanceID == e.InstanceID {
		t.Error("reissue kept the same instance ID")
	}
	if r.scored {
		t.Error("reissue kept the scored flag")
	}
	if r.Card.ID != e.Card.ID {
		t.Error("reissue changed the card")
	}
}
