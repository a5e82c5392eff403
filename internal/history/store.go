package history

import (
	"github.com/google/uuid"

	"github.com/mgatere/termfolio/internal/format"
)

// EntryID identifies a history entry for the whole of its life.
type EntryID string

// Entry is one command line and the response shown under it.
type Entry struct {
	ID           EntryID
	Command      string
	Response     format.Response
	IsLoading    bool
	IsAIResponse bool
	IsError      bool
}

// Store is the terminal transcript. Entries are only appended or amended in place;
// Clear drops all of them at once.
type Store struct {
	entries []Entry
	index   map[EntryID]int
}

func NewStore() *Store {
	return &Store{index: make(map[EntryID]int)}
}

// Append adds an entry and returns the ID every later amendment must use.
func (s *Store) Append(command string, response format.Response) EntryID {
	id := EntryID(uuid.NewString())
	s.index[id] = len(s.entries)
	s.entries = append(s.entries, Entry{ID: id, Command: command, Response: response})
	return id
}

// AppendLoading adds an entry that is waiting on an asynchronous answer.
func (s *Store) AppendLoading(command string, response format.Response) EntryID {
	id := s.Append(command, response)
	s.entries[s.index[id]].IsLoading = true
	return id
}

// Amend applies fn to the entry with the given ID. It reports false when the entry
// no longer exists, e.g. after Clear.
func (s *Store) Amend(id EntryID, fn func(e *Entry)) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	fn(&s.entries[i])
	s.entries[i].ID = id
	return true
}

func (s *Store) Get(id EntryID) (Entry, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Entries returns a snapshot of the transcript in order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Clear() {
	s.entries = nil
	s.index = make(map[EntryID]int)
}
