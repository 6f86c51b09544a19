package models

import (
	"testing"
	"time"
)

func TestSoftDeleteStampsOnce(t *testing.T) {
	var m Model

	first := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	m.SoftDelete(first)
	if !m.IsDeleted {
		t.Fatal("IsDeleted = false after SoftDelete")
	}
	if m.DeletedAt == nil || !m.DeletedAt.Equal(first) {
		t.Fatalf("DeletedAt = %v, want %v", m.DeletedAt, first)
	}

	// Second call must not move the stamp.
	m.SoftDelete(first.Add(time.Hour))
	if !m.DeletedAt.Equal(first) {
		t.Fatalf("DeletedAt moved to %v on repeat delete", m.DeletedAt)
	}
}

func TestAccessDelegatesToProjectOwner(t *testing.T) {
	project := &Project{Model: Model{ID: 1}, OwnerID: 77}
	page := &Page{Model: Model{ID: 2}, ProjectID: 1, Project: project}
	object := &PageObject{Model: Model{ID: 3}, PageID: 2, Page: page}
	event := &Event{Model: Model{ID: 4}, ObjectID: 3, Object: object}

	for name, accessible := range map[string]interface{ IsAccessibleTo(int64) bool }{
		"project": project,
		"page":    page,
		"object":  object,
		"event":   event,
	} {
		if !accessible.IsAccessibleTo(77) {
			t.Errorf("%s.IsAccessibleTo(owner) = false, want true", name)
		}
		if accessible.IsAccessibleTo(78) {
			t.Errorf("%s.IsAccessibleTo(stranger) = true, want false", name)
		}
	}
}

func TestAccessRequiresLoadedParentChain(t *testing.T) {
	page := &Page{Model: Model{ID: 2}, ProjectID: 1}
	if page.IsAccessibleTo(77) {
		t.Error("page with unloaded project should not be accessible")
	}

	event := &Event{Model: Model{ID: 4}, ObjectID: 3}
	if event.IsAccessibleTo(77) {
		t.Error("event with unloaded object should not be accessible")
	}
}

func TestActiveEvent(t *testing.T) {
	now := time.Now()
	deleted := Event{Model: Model{ID: 1, IsDeleted: true, DeletedAt: &now}}
	live := Event{Model: Model{ID: 2}}

	o := &PageObject{Events: []Event{deleted, live}}
	got := o.ActiveEvent()
	if got == nil || got.ID != 2 {
		t.Fatalf("ActiveEvent() = %v, want event 2", got)
	}

	o = &PageObject{Events: []Event{deleted}}
	if o.ActiveEvent() != nil {
		t.Fatal("ActiveEvent() should be nil when all events are deleted")
	}
}

func TestEnumValidity(t *testing.T) {
	for _, ot := range []ObjectType{ObjectDefault, ObjectText, ObjectImage} {
		if !ot.Valid() {
			t.Errorf("ObjectType(%q).Valid() = false", ot)
		}
	}
	if ObjectType("VIDEO").Valid() {
		t.Error("unknown object type reported valid")
	}

	for _, tt := range []TransitionType{
		TransitionNone, TransitionFade, TransitionSlideLeft,
		TransitionSlideRight, TransitionSlideUp, TransitionSlideDown,
	} {
		if !tt.Valid() {
			t.Errorf("TransitionType(%q).Valid() = false", tt)
		}
	}
	if TransitionType("WARP").Valid() {
		t.Error("unknown transition type reported valid")
	}
}
