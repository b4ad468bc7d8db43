// Package session ties an editable text buffer to a committed palette
// document.
//
// Text edits are validated on a debounce schedule: each Edit replaces any
// pending attempt, so only the latest text is ever checked. A successful
// attempt replaces the document wholesale. Structured operations change the
// document directly and re-render the buffer from it.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/validate"
	"github.com/tliron/commonlog"
)

// DefaultDebounce is the delay between the last edit and its validation.
const DefaultDebounce = 500 * time.Millisecond

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session is closed")

// Option configures a Session.
type Option func(*Session)

// WithDebounce sets the validation delay. Zero or less validates every edit
// synchronously.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithOnReport registers a callback for every validation report.
func WithOnReport(fn func(validate.Report)) Option {
	return func(s *Session) { s.onReport = fn }
}

// WithOnCommit registers a callback for every document replacement, whether
// from a text edit or a structured operation.
func WithOnCommit(fn func(*palette.Document)) Option {
	return func(s *Session) { s.onCommit = fn }
}

// WithOnReject registers a callback for text that failed the acceptance gate.
func WithOnReject(fn func(error)) Option {
	return func(s *Session) { s.onReject = fn }
}

// Attempt is the outcome of one validation, carrying the exact text that was
// checked. Document is nil when Err is set.
type Attempt struct {
	Text     string
	Report   validate.Report
	Document *palette.Document
	Err      error
}

// WithOnAttempt registers a callback that receives every validation outcome,
// from text edits and structured operations alike. It runs after the other
// callbacks.
func WithOnAttempt(fn func(Attempt)) Option {
	return func(s *Session) { s.onAttempt = fn }
}

// WithLogger replaces the default session logger.
func WithLogger(log commonlog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// Session owns one palette document and its text buffer. It is safe for
// concurrent use; callbacks run without the session lock held.
type Session struct {
	mu sync.Mutex

	doc    *palette.Document
	buffer string
	report validate.Report
	err    error

	debounce time.Duration
	timer    *time.Timer
	gen      uint64
	pending  bool
	closed   bool

	onReport  func(validate.Report)
	onCommit  func(*palette.Document)
	onReject  func(error)
	onAttempt func(Attempt)
	log       commonlog.Logger
}

// New starts a session on doc. A nil doc starts empty.
func New(doc *palette.Document, opts ...Option) *Session {
	if doc == nil {
		doc = palette.New()
	}
	s := &Session{
		doc:      doc,
		buffer:   doc.Render(),
		debounce: DefaultDebounce,
		log:      commonlog.GetLogger("palettekit.session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns the committed document.
func (s *Session) Document() *palette.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Buffer returns the current text, which may be ahead of the document while
// an edit is pending or after a rejected edit.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Report returns the most recent validation report.
func (s *Session) Report() validate.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// Err returns the rejection from the most recent attempt, or nil if it
// committed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Pending reports whether an edit is waiting to be validated.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Edit replaces the buffer with text and schedules a validation attempt,
// cancelling any attempt already scheduled.
func (s *Session) Edit(text string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.buffer = text
	gen := s.cancelLocked()
	s.pending = true

	if s.debounce <= 0 {
		s.mu.Unlock()
		s.attempt(gen)
		return nil
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.attempt(gen) })
	s.mu.Unlock()
	return nil
}

// Flush runs the pending attempt now, if there is one.
func (s *Session) Flush() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	gen := s.gen
	s.mu.Unlock()
	s.attempt(gen)
}

// Close cancels any pending attempt. Later edits and operations fail with
// ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.closed = true
}

// AddFamily inserts an empty family at position at; see
// palette.Document.AddFamily.
func (s *Session) AddFamily(name string, at int) error {
	return s.apply(func(d *palette.Document) (*palette.Document, error) {
		return d.AddFamily(name, at)
	})
}

// RemoveFamily deletes a family.
func (s *Session) RemoveFamily(name string) error {
	return s.apply(func(d *palette.Document) (*palette.Document, error) {
		return d.RemoveFamily(name)
	})
}

// RenameFamily renames a family in place.
func (s *Session) RenameFamily(oldName, newName string) error {
	return s.apply(func(d *palette.Document) (*palette.Document, error) {
		return d.RenameFamily(oldName, newName)
	})
}

// SetColor stores c at an explicit slot.
func (s *Session) SetColor(family string, slot int, c color.Color) error {
	return s.apply(func(d *palette.Document) (*palette.Document, error) {
		return d.SetColor(family, slot, c)
	})
}

// RemoveColor deletes one slot.
func (s *Session) RemoveColor(family string, slot int) error {
	return s.apply(func(d *palette.Document) (*palette.Document, error) {
		return d.RemoveColor(family, slot)
	})
}

// InsertColor adds c to family at an automatically chosen slot and returns
// that slot.
func (s *Session) InsertColor(family string, c color.Color) (int, error) {
	var slot int
	err := s.apply(func(d *palette.Document) (*palette.Document, error) {
		out, n, err := d.InsertColor(family, c)
		slot = n
		return out, err
	})
	return slot, err
}

// apply commits the result of a structured operation. Any pending text edit
// is discarded and the buffer is re-rendered from the new document.
func (s *Session) apply(op func(*palette.Document) (*palette.Document, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	doc, err := op(s.doc)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if s.pending {
		s.log.Debug("discarding pending edit for structured change")
	}
	s.cancelLocked()
	s.doc = doc
	s.buffer = doc.Render()
	s.report = validate.Validate(s.buffer)
	s.err = nil
	result := Attempt{Text: s.buffer, Report: s.report, Document: doc}
	onReport, onCommit, onAttempt := s.onReport, s.onCommit, s.onAttempt
	s.mu.Unlock()

	if onReport != nil {
		onReport(result.Report)
	}
	if onCommit != nil {
		onCommit(doc)
	}
	if onAttempt != nil {
		onAttempt(result)
	}
	return nil
}

// attempt validates and tries to commit the buffer. It does nothing if a
// newer edit or operation has superseded gen.
func (s *Session) attempt(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil

	text := s.buffer
	report := validate.Validate(text)
	doc, err := validate.TryCommit(text)

	s.report = report
	s.err = err
	if err == nil {
		s.doc = doc
		s.log.Debugf("committed %d families, %d colors", doc.Len(), doc.Colors())
	} else {
		s.log.Infof("edit rejected: %s", err)
	}
	onReport, onCommit, onReject, onAttempt := s.onReport, s.onCommit, s.onReject, s.onAttempt
	s.mu.Unlock()

	if onReport != nil {
		onReport(report)
	}
	switch {
	case err == nil && onCommit != nil:
		onCommit(doc)
	case err != nil && onReject != nil:
		onReject(err)
	}
	if onAttempt != nil {
		onAttempt(Attempt{Text: text, Report: report, Document: doc, Err: err})
	}
}

// cancelLocked stops the pending timer and invalidates any attempt already
// running. It returns the new generation.
func (s *Session) cancelLocked() uint64 {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
	s.gen++
	return s.gen
}
