package jsonedit

import (
	"io"
	"log/slog"
	"sort"
	"sync"
)

// Change describes one committed replacement of a Store's document.
type Change struct {
	Version uint64
	Path    Path
	Before  string
	After   string
}

// Store holds the text of one JSON document and replaces it atomically. An
// edit either commits a complete new text or leaves the store untouched.
type Store struct {
	mu      sync.RWMutex
	text    string
	version uint64
	indent  int
	log     *slog.Logger

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int

	// commits reach subscribers in version order; delivered is the last
	// version handed out
	notifyMu  sync.Mutex
	notified  *sync.Cond
	delivered uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for commits and rejected edits.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIndent sets the indent of committed text. The default is 2.
func WithIndent(n int) StoreOption {
	return func(s *Store) {
		if n >= 0 {
			s.indent = n
		}
	}
}

func NewStore(text string, opts ...StoreOption) *Store {
	s := &Store{
		text:   text,
		indent: 2,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		subs:   map[int]func(Change){},
	}
	s.notified = sync.NewCond(&s.notifyMu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Version counts the commits made so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Root parses the current text.
func (s *Store) Root() (*Value, error) {
	return Parse([]byte(s.Text()))
}

// Subscribe registers fn to be called after every commit. Calls arrive in
// version order, one at a time. fn may read the store and unsubscribe but
// must not edit it. The returned func removes fn.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Apply parses edited as JSON and stores it at path. Invalid text returns a
// *ParseError without attempting the update.
func (s *Store) Apply(path Path, edited string) (Change, bool, error) {
	v, err := Parse([]byte(edited))
	if err != nil {
		s.log.Warn("rejected edit", "path", FormatPath(path), "err", err)
		return Change{}, false, err
	}
	return s.Update(path, v)
}

// Replace stores text as the whole document after checking that it parses.
func (s *Store) Replace(text string) (Change, bool, error) {
	return s.Apply(nil, text)
}

// Update replaces the value at path with v and commits the re-serialized
// document. changed is false when the new document equals the old one, in
// which case nothing is committed and no subscriber is called.
func (s *Store) Update(path Path, v *Value) (ch Change, changed bool, err error) {
	s.mu.Lock()
	ch, changed, err = s.commitLocked(path, v)
	s.mu.Unlock()
	if err != nil || !changed {
		return ch, changed, err
	}

	s.notifyMu.Lock()
	for s.delivered+1 != ch.Version {
		s.notified.Wait()
	}
	s.notify(ch)
	s.delivered = ch.Version
	s.notified.Broadcast()
	s.notifyMu.Unlock()
	return ch, true, nil
}

func (s *Store) commitLocked(path Path, v *Value) (Change, bool, error) {
	loc := FormatPath(path)
	root, err := Parse([]byte(s.text))
	if err != nil && len(path) > 0 {
		s.log.Warn("stored document does not parse", "path", loc, "err", err)
		return Change{}, false, err
	}
	next, err := Update(root, path, v)
	if err != nil {
		s.log.Warn("rejected edit", "path", loc, "err", err)
		return Change{}, false, err
	}
	out, err := Marshal(next, Indent(s.indent))
	if err != nil {
		s.log.Warn("rejected edit", "path", loc, "err", err)
		return Change{}, false, err
	}
	if string(out) == s.text || (root != nil && sameText(root, out, s.indent)) {
		s.log.Debug("edit left document unchanged", "path", loc)
		return Change{Version: s.version, Path: path, Before: s.text, After: s.text}, false, nil
	}
	ch := Change{Version: s.version + 1, Path: path, Before: s.text, After: string(out)}
	s.text = ch.After
	s.version = ch.Version
	s.log.Debug("committed edit", "path", loc, "version", ch.Version, "bytes", len(out))
	return ch, true, nil
}

func (s *Store) notify(ch Change) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Change), len(ids))
	for i, id := range ids {
		fns[i] = s.subs[id]
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ch)
	}
}

// sameText reports whether root already serializes to out. Member order
// counts, so reordering keys is a change.
func sameText(root *Value, out []byte, indent int) bool {
	old, err := Marshal(root, Indent(indent))
	return err == nil && string(old) == string(out)
}
