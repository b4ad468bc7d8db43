package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/parser"
	"github.com/jsvensson/palettekit/internal/validate"
)

const bluePalette = `{
  "blue": {
    "500": "#3b82f6"
  }
}`

const redPalette = `{
  "red": {
    "500": "#ef4444"
  }
}`

func mustHex(t *testing.T, s string) color.Color {
	t.Helper()
	c, err := color.ParseHex(s)
	if err != nil {
		t.Fatalf("ParseHex(%q): %v", s, err)
	}
	return c
}

func TestNew_RendersBuffer(t *testing.T) {
	s := New(nil)
	if got := s.Buffer(); got != "{}" {
		t.Errorf("Buffer() = %q, want %q", got, "{}")
	}
	if s.Document().Len() != 0 {
		t.Error("nil document should start empty")
	}
}

func TestEdit_CommitsSynchronously(t *testing.T) {
	var commits int
	s := New(nil, WithDebounce(0), WithOnCommit(func(*palette.Document) { commits++ }))

	if err := s.Edit(bluePalette); err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	if commits != 1 {
		t.Errorf("commits = %d, want 1", commits)
	}
	if _, ok := s.Document().Lookup("blue", 500); !ok {
		t.Error("blue.500 not committed")
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, want nil", s.Err())
	}
	if s.Pending() {
		t.Error("Pending() = true after synchronous edit")
	}
}

func TestEdit_RejectKeepsDocumentAndBuffer(t *testing.T) {
	var rejected error
	var report validate.Report
	s := New(nil,
		WithDebounce(0),
		WithOnReject(func(err error) { rejected = err }),
		WithOnReport(func(r validate.Report) { report = r }),
	)
	if err := s.Edit(bluePalette); err != nil {
		t.Fatal(err)
	}
	before := s.Document()

	bad := "{\n  \"blue\": {\n    \"500\": \"notahex\"\n  }\n}"
	if err := s.Edit(bad); err != nil {
		t.Fatal(err)
	}

	if s.Document() != before {
		t.Error("rejected edit replaced the document")
	}
	if s.Buffer() != bad {
		t.Error("rejected edit should leave the typed text in the buffer")
	}
	var sv *parser.SemanticViolation
	if !errors.As(rejected, &sv) || sv.Path() != "blue.500" {
		t.Errorf("rejection = %v, want violation at blue.500", rejected)
	}
	if !errors.Is(s.Err(), rejected) {
		t.Errorf("Err() = %v, want %v", s.Err(), rejected)
	}
	if !report.Suspect(2) {
		t.Errorf("report did not flag line 2: %+v", report.Findings)
	}
}

func TestEdit_DebounceKeepsLatest(t *testing.T) {
	var mu sync.Mutex
	var committed []*palette.Document
	done := make(chan struct{}, 4)

	s := New(nil,
		WithDebounce(20*time.Millisecond),
		WithOnCommit(func(d *palette.Document) {
			mu.Lock()
			committed = append(committed, d)
			mu.Unlock()
			done <- struct{}{}
		}),
	)
	defer s.Close()

	_ = s.Edit(bluePalette)
	_ = s.Edit(redPalette)
	if !s.Pending() {
		t.Error("Pending() = false right after Edit")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for commit")
	}
	// Give a stale timer a chance to fire if it was not cancelled.
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(committed) != 1 {
		t.Fatalf("commits = %d, want 1", len(committed))
	}
	if _, ok := committed[0].Family("red"); !ok {
		t.Error("committed document is not the latest edit")
	}
}

func TestFlush(t *testing.T) {
	s := New(nil, WithDebounce(time.Hour))
	defer s.Close()

	_ = s.Edit(bluePalette)
	if !s.Pending() {
		t.Fatal("Pending() = false after Edit")
	}
	s.Flush()
	if s.Pending() {
		t.Error("Pending() = true after Flush")
	}
	if _, ok := s.Document().Family("blue"); !ok {
		t.Error("Flush did not commit")
	}

	// Nothing pending: no-op.
	s.Flush()
}

func TestClose_CancelsPending(t *testing.T) {
	var commits int
	s := New(nil, WithDebounce(time.Hour), WithOnCommit(func(*palette.Document) { commits++ }))

	_ = s.Edit(bluePalette)
	s.Close()
	s.Flush()

	if commits != 0 {
		t.Errorf("commits = %d after Close, want 0", commits)
	}
	if err := s.Edit(redPalette); !errors.Is(err, ErrClosed) {
		t.Errorf("Edit() after Close error = %v, want ErrClosed", err)
	}
	if err := s.AddFamily("green", -1); !errors.Is(err, ErrClosed) {
		t.Errorf("AddFamily() after Close error = %v, want ErrClosed", err)
	}
}

func TestStructuredOps(t *testing.T) {
	var commits int
	s := New(nil, WithDebounce(0), WithOnCommit(func(*palette.Document) { commits++ }))

	if err := s.AddFamily("Blue", -1); err != nil {
		t.Fatalf("AddFamily: %v", err)
	}
	slot, err := s.InsertColor("blue", mustHex(t, "#3b82f6"))
	if err != nil {
		t.Fatalf("InsertColor: %v", err)
	}
	if slot != 500 {
		t.Errorf("first slot = %d, want 500", slot)
	}
	if err := s.SetColor("blue", 600, mustHex(t, "#2563eb")); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if err := s.AddFamily("red", 0); err != nil {
		t.Fatalf("AddFamily: %v", err)
	}
	if err := s.RenameFamily("red", "rose"); err != nil {
		t.Fatalf("RenameFamily: %v", err)
	}
	if err := s.RemoveColor("blue", 600); err != nil {
		t.Fatalf("RemoveColor: %v", err)
	}

	want := `{
  "rose": {},
  "blue": {
    "500": "#3b82f6"
  }
}`
	if got := s.Buffer(); got != want {
		t.Errorf("Buffer() =\n%s\nwant:\n%s", got, want)
	}
	if commits != 6 {
		t.Errorf("commits = %d, want 6", commits)
	}
	if !s.Report().OK() {
		t.Errorf("Report() = %+v, want OK", s.Report())
	}

	if err := s.RemoveFamily("rose"); err != nil {
		t.Fatalf("RemoveFamily: %v", err)
	}
	if err := s.RemoveFamily("rose"); !errors.Is(err, palette.ErrFamilyNotFound) {
		t.Errorf("second RemoveFamily error = %v, want ErrFamilyNotFound", err)
	}
}

func TestStructuredOp_DiscardsPendingEdit(t *testing.T) {
	s := New(nil, WithDebounce(time.Hour))
	defer s.Close()

	_ = s.Edit(redPalette)
	if err := s.AddFamily("blue", -1); err != nil {
		t.Fatalf("AddFamily: %v", err)
	}
	if s.Pending() {
		t.Error("structured op should cancel the pending edit")
	}
	s.Flush()
	if _, ok := s.Document().Family("red"); ok {
		t.Error("discarded edit was committed")
	}
	if got := s.Buffer(); got != "{\n  \"blue\": {}\n}" {
		t.Errorf("Buffer() = %q, want rendered document", got)
	}
}

func TestStructuredOp_ErrorLeavesState(t *testing.T) {
	s := New(nil, WithDebounce(0))
	_ = s.Edit(bluePalette)
	before := s.Document()

	if err := s.AddFamily("BLUE", -1); !errors.Is(err, palette.ErrFamilyExists) {
		t.Errorf("AddFamily error = %v, want ErrFamilyExists", err)
	}
	if s.Document() != before {
		t.Error("failed op replaced the document")
	}
}

func TestOnAttempt_CarriesCheckedText(t *testing.T) {
	var got []Attempt
	var s *Session
	s = New(nil,
		WithDebounce(time.Hour),
		WithOnReport(func(validate.Report) {
			// An edit arriving while callbacks run must not leak into this attempt.
			if len(got) == 0 {
				_ = s.Edit(redPalette)
			}
		}),
		WithOnAttempt(func(a Attempt) { got = append(got, a) }),
	)

	_ = s.Edit(`{"blue": "oops"}`)
	s.Flush()

	if len(got) != 1 {
		t.Fatalf("attempts = %d, want 1", len(got))
	}
	a := got[0]
	if a.Text != `{"blue": "oops"}` {
		t.Errorf("Text = %q, want the checked text", a.Text)
	}
	var sv *parser.SemanticViolation
	if !errors.As(a.Err, &sv) || a.Document != nil {
		t.Errorf("attempt = %+v, want rejection without document", a)
	}
	if s.Buffer() != redPalette {
		t.Errorf("Buffer() = %q, want newer edit", s.Buffer())
	}

	if err := s.AddFamily("gray", -1); err != nil {
		t.Fatal(err)
	}
	last := got[len(got)-1]
	if last.Err != nil || last.Document == nil || last.Text != last.Document.Render() {
		t.Errorf("structured op attempt = %+v", last)
	}
}
