package input

// Editor manages the input buffer and a cursor tracked in runes, independent of any
// widget, so the view can draw its own cursor glyph.
type Editor struct {
	buffer []rune
	cursor int
}

func NewEditor() *Editor {
	return &Editor{}
}

// Get returns the current input buffer.
func (e *Editor) Get() string {
	return string(e.buffer)
}

// Cursor returns the cursor offset in runes.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Split returns the text before and after the cursor.
func (e *Editor) Split() (string, string) {
	return string(e.buffer[:e.cursor]), string(e.buffer[e.cursor:])
}

// Set replaces the buffer and moves the cursor to its end.
func (e *Editor) Set(text string) {
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
}

func (e *Editor) Clear() {
	e.buffer = nil
	e.cursor = 0
}

func (e *Editor) IsEmpty() bool {
	return len(e.buffer) == 0
}

// Insert adds text at the cursor and leaves the cursor after it.
func (e *Editor) Insert(text string) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	buf := make([]rune, 0, len(e.buffer)+len(runes))
	buf = append(buf, e.buffer[:e.cursor]...)
	buf = append(buf, runes...)
	buf = append(buf, e.buffer[e.cursor:]...)
	e.buffer = buf
	e.cursor += len(runes)
}

// Backspace removes the rune before the cursor.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.buffer = append(e.buffer[:e.cursor-1], e.buffer[e.cursor:]...)
	e.cursor--
}

// Delete removes the rune under the cursor.
func (e *Editor) Delete() {
	if e.cursor >= len(e.buffer) {
		return
	}
	e.buffer = append(e.buffer[:e.cursor], e.buffer[e.cursor+1:]...)
}

// KillToStart removes everything before the cursor.
func (e *Editor) KillToStart() {
	e.buffer = append([]rune(nil), e.buffer[e.cursor:]...)
	e.cursor = 0
}

// KillToEnd removes everything from the cursor on.
func (e *Editor) KillToEnd() {
	e.buffer = e.buffer[:e.cursor]
}

func (e *Editor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Editor) Right() {
	if e.cursor < len(e.buffer) {
		e.cursor++
	}
}

func (e *Editor) Home() {
	e.cursor = 0
}

func (e *Editor) End() {
	e.cursor = len(e.buffer)
}
