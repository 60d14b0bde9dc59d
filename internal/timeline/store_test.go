package timeline

import (
	"errors"
	"reflect"
	"testing"
)

func defaultStyle() Style {
	return Style{
		FontFamily: "Arial",
		FontSize:   32,
		FontColor:  "white",
		Position:   PositionBottom,
	}
}

func seedStore(t *testing.T, n int) *Store {
	t.Helper()
	s := NewStore()
	for i := 0; i < n; i++ {
		_, err := s.Apply(Insert(Subtitle{
			Text:      "entry",
			StartTime: float64(i * 10),
			EndTime:   float64(i*10 + 3),
			Style:     defaultStyle(),
		}))
		if err != nil {
			t.Fatalf("seeding insert %d failed: %v", i, err)
		}
	}
	return s
}

func TestApplyInsertAppendsWithFreshID(t *testing.T) {
	s := NewStore()

	applied, err := s.Apply(Insert(Subtitle{
		Text:      "Hi",
		StartTime: 0,
		EndTime:   3,
		Style:     defaultStyle(),
	}))
	if err != nil {
		t.Fatalf("Apply(Insert) failed: %v", err)
	}
	if applied.Subtitle.ID == "" {
		t.Error("inserted subtitle has no id")
	}
	if applied.Index != 0 {
		t.Errorf("Index = %d, want 0", applied.Index)
	}

	applied2, err := s.Apply(Insert(Subtitle{
		Text:      "Second",
		StartTime: 5,
		EndTime:   8,
		Style:     defaultStyle(),
	}))
	if err != nil {
		t.Fatalf("second Apply(Insert) failed: %v", err)
	}
	if applied2.Subtitle.ID == applied.Subtitle.ID {
		t.Error("two inserts produced the same id")
	}
	if applied2.Index != 1 {
		t.Errorf("second Index = %d, want 1", applied2.Index)
	}
}

func TestApplyInsertRejectsInvalidTiming(t *testing.T) {
	s := NewStore()

	_, err := s.Apply(Insert(Subtitle{Text: "bad", StartTime: 5, EndTime: 5}))
	if !errors.Is(err, ErrInvalidTiming) {
		t.Fatalf("err = %v, want ErrInvalidTiming", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after rejected insert, want 0", s.Len())
	}
}

func TestApplyUpdateNegativeIndexMatchesPositive(t *testing.T) {
	text := "changed"

	a := seedStore(t, 3)
	b := seedStore(t, 3)

	if _, err := a.Apply(Update(-1, FieldPatch{Text: &text})); err != nil {
		t.Fatalf("Update(-1) failed: %v", err)
	}
	if _, err := b.Apply(Update(2, FieldPatch{Text: &text})); err != nil {
		t.Fatalf("Update(2) failed: %v", err)
	}

	got := a.Snapshot()[2].Text
	want := b.Snapshot()[2].Text
	if got != want || got != text {
		t.Errorf("Update(-1) text = %q, Update(2) text = %q, want %q", got, want, text)
	}
}

func TestApplyUpdateOutOfRangeLeavesStoreUntouched(t *testing.T) {
	s := seedStore(t, 3)
	before := s.Snapshot()

	text := "never applied"
	for _, idx := range []int{5, 3, -4, -100} {
		_, err := s.Apply(Update(idx, FieldPatch{Text: &text}))
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Update(%d) err = %v, want ErrIndexOutOfRange", idx, err)
		}
	}

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("timeline changed after rejected updates")
	}
}

func TestApplyUpdateOverlaysOnlySetFields(t *testing.T) {
	s := seedStore(t, 1)
	original := s.Snapshot()[0]

	size := 48
	bold := true
	applied, err := s.Apply(Update(0, FieldPatch{FontSize: &size, Bold: &bold}))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got := applied.Subtitle
	if got.ID != original.ID {
		t.Errorf("id changed: %q -> %q", original.ID, got.ID)
	}
	if got.Text != original.Text {
		t.Errorf("text changed unexpectedly: %q", got.Text)
	}
	if got.StartTime != original.StartTime || got.EndTime != original.EndTime {
		t.Errorf("times changed unexpectedly: %v-%v", got.StartTime, got.EndTime)
	}
	if got.Style.FontSize != 48 || !got.Style.Bold {
		t.Errorf("patch not applied: size=%d bold=%v", got.Style.FontSize, got.Style.Bold)
	}
	if got.Style.FontFamily != original.Style.FontFamily {
		t.Errorf("untouched style field changed: %q", got.Style.FontFamily)
	}
}

func TestApplyUpdateRejectsInvalidTimingAtomically(t *testing.T) {
	s := seedStore(t, 1)
	before := s.Snapshot()

	end := 0.0 // entry starts at 0, so end must be > 0
	_, err := s.Apply(Update(0, FieldPatch{EndTime: &end}))
	if !errors.Is(err, ErrInvalidTiming) {
		t.Fatalf("err = %v, want ErrInvalidTiming", err)
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("timeline changed after rejected update")
	}
}

func TestApplyNoOpSentinel(t *testing.T) {
	s := seedStore(t, 2)
	before := s.Snapshot()

	applied, err := s.Apply(None())
	if err != nil {
		t.Fatalf("Apply(None) failed: %v", err)
	}
	if !applied.NoOp {
		t.Error("Applied.NoOp = false for the no-op sentinel")
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("timeline changed after no-op")
	}
}

func TestReplaceSnapshotRoundTrip(t *testing.T) {
	s := seedStore(t, 3)
	before := s.Snapshot()

	s.Replace(s.Snapshot())

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("Replace(Snapshot()) is not observably a no-op")
	}
}

func TestReplaceDropsInvalidElements(t *testing.T) {
	s := NewStore()
	s.Replace([]Subtitle{
		{ID: "a", Text: "ok", StartTime: 0, EndTime: 2},
		{ID: "b", Text: "zero length", StartTime: 2, EndTime: 2},
		{ID: "c", Text: "negative start", StartTime: -1, EndTime: 2},
		{ID: "d", Text: "ok too", StartTime: 3, EndTime: 4},
	})

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("kept %d subtitles, want 2", len(snap))
	}
	if snap[0].ID != "a" || snap[1].ID != "d" {
		t.Errorf("kept ids %q, %q; want a, d", snap[0].ID, snap[1].ID)
	}
}

func TestClear(t *testing.T) {
	s := seedStore(t, 3)
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
}

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		index, length int
		want          int
		wantErr       bool
	}{
		{0, 3, 0, false},
		{2, 3, 2, false},
		{-1, 3, 2, false},
		{-3, 3, 0, false},
		{3, 3, 0, true},
		{-4, 3, 0, true},
		{0, 0, 0, true},
		{-1, 0, 0, true},
	}

	for _, tt := range tests {
		got, err := ResolveIndex(tt.index, tt.length)
		if tt.wantErr {
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("ResolveIndex(%d, %d) err = %v, want ErrIndexOutOfRange",
					tt.index, tt.length, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveIndex(%d, %d) returned error: %v", tt.index, tt.length, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveIndex(%d, %d) = %d, want %d", tt.index, tt.length, got, tt.want)
		}
	}
}

func TestChronologicalIsDerivedView(t *testing.T) {
	s := NewStore()
	for _, start := range []float64{10, 0, 5} {
		if _, err := s.Apply(Insert(Subtitle{
			Text:      "x",
			StartTime: start,
			EndTime:   start + 1,
		})); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	snap := s.Snapshot()
	if snap[0].StartTime != 10 {
		t.Error("snapshot should preserve insertion order, not chronological order")
	}

	chron := Chronological(snap)
	for i := 1; i < len(chron); i++ {
		if chron[i-1].StartTime > chron[i].StartTime {
			t.Fatalf("Chronological not sorted at %d: %v > %v",
				i, chron[i-1].StartTime, chron[i].StartTime)
		}
	}
	if snap[0].StartTime != 10 {
		t.Error("Chronological mutated the input snapshot")
	}
}
