package lsp

import (
	"sync"

	"github.com/jsvensson/palettekit/internal/session"
	"github.com/jsvensson/palettekit/internal/validate"
)

// PublishFunc receives the outcome of every validation attempt for a URI.
type PublishFunc func(uri, content string, report validate.Report, rejection error)

// DocumentStore holds an edit session per open document, keyed by URI.
type DocumentStore struct {
	mu       sync.RWMutex
	docs     map[string]*session.Session
	opts     []session.Option
	onResult PublishFunc
}

// NewDocumentStore returns a store whose sessions use opts. onResult may be
// nil.
func NewDocumentStore(onResult PublishFunc, opts ...session.Option) *DocumentStore {
	return &DocumentStore{
		docs:     make(map[string]*session.Session),
		opts:     opts,
		onResult: onResult,
	}
}

// Open starts a session for uri and validates content immediately.
func (s *DocumentStore) Open(uri, content string) {
	opts := append(append([]session.Option{}, s.opts...),
		session.WithOnAttempt(func(a session.Attempt) {
			if s.onResult != nil {
				s.onResult(uri, a.Text, a.Report, a.Err)
			}
		}),
	)
	sess := session.New(nil, opts...)

	s.mu.Lock()
	if old, ok := s.docs[uri]; ok {
		old.Close()
	}
	s.docs[uri] = sess
	s.mu.Unlock()

	_ = sess.Edit(content)
	sess.Flush()
}

// Update schedules validation of new content.
func (s *DocumentStore) Update(uri, content string) {
	s.mu.RLock()
	sess, ok := s.docs[uri]
	s.mu.RUnlock()
	if !ok {
		s.Open(uri, content)
		return
	}
	_ = sess.Edit(content)
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.docs[uri]; ok {
		sess.Close()
		delete(s.docs, uri)
	}
}

// Get returns the latest text for uri.
func (s *DocumentStore) Get(uri string) (string, bool) {
	sess, ok := s.Session(uri)
	if !ok {
		return "", false
	}
	return sess.Buffer(), true
}

// Session returns the session for uri.
func (s *DocumentStore) Session(uri string) (*session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.docs[uri]
	return sess, ok
}
