package tasklist

import (
	"testing"

	"github.com/fastygo/planner/domain"
)

func TestCollection_Transitions(t *testing.T) {
	c := NewCollection()
	if !c.LastSync().IsZero() {
		t.Fatal("new collection should be unsynced")
	}

	c.ReplaceAll([]domain.Task{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}, refNow)
	if !c.LastSync().Equal(refNow) {
		t.Errorf("LastSync = %v, want %v", c.LastSync(), refNow)
	}

	c.Add(domain.Task{ID: "c", Title: "C"})
	if !c.Put(domain.Task{ID: "b", Title: "B2"}) {
		t.Error("Put existing task returned false")
	}
	if c.Put(domain.Task{ID: "zz"}) {
		t.Error("Put unknown task returned true")
	}
	if !c.Remove("a") {
		t.Error("Remove existing task returned false")
	}

	got := c.Snapshot()
	if !sameIDs(got, "b", "c") {
		t.Fatalf("Snapshot = %v, want [b c]", ids(got))
	}
	if task, _ := c.Get("b"); task.Title != "B2" {
		t.Errorf("Get(b).Title = %q, want B2", task.Title)
	}

	got[0].Title = "mutated"
	if task, _ := c.Get("b"); task.Title != "B2" {
		t.Error("snapshot shares memory with collection")
	}
}

func TestRegistry_ForReturnsSameCollection(t *testing.T) {
	r := NewRegistry()
	if r.For("u1") != r.For("u1") {
		t.Error("For should return a stable collection per owner")
	}
	if r.For("u1") == r.For("u2") {
		t.Error("owners must not share a collection")
	}
}
