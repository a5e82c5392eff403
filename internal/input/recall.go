package input

// RecallLog keeps every submitted command line for Up/Down recall.
// Unlike the transcript it survives "clear" and keeps duplicates.
type RecallLog struct {
	entries []string
	index   int // offset from the newest entry, -1 when not browsing
}

func NewRecallLog() *RecallLog {
	return &RecallLog{index: -1}
}

// Add appends a command and stops browsing. Empty commands are ignored.
func (r *RecallLog) Add(cmd string) {
	if cmd == "" {
		return
	}
	r.entries = append(r.entries, cmd)
	r.index = -1
}

// Older moves one step back in time. It reports false when there is nothing older.
func (r *RecallLog) Older() (string, bool) {
	if len(r.entries) == 0 || r.index >= len(r.entries)-1 {
		return "", false
	}
	r.index++
	return r.entries[len(r.entries)-1-r.index], true
}

// Newer moves one step forward in time. Stepping past the newest entry leaves
// browsing and yields an empty line. It reports false when not browsing.
func (r *RecallLog) Newer() (string, bool) {
	switch {
	case r.index > 0:
		r.index--
		return r.entries[len(r.entries)-1-r.index], true
	case r.index == 0:
		r.index = -1
		return "", true
	}
	return "", false
}

// Index returns the browsing offset, -1 when not browsing.
func (r *RecallLog) Index() int {
	return r.index
}

func (r *RecallLog) Reset() {
	r.index = -1
}

func (r *RecallLog) Size() int {
	return len(r.entries)
}
