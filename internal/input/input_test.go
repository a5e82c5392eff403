package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditor_InsertAtEndTracksLength(t *testing.T) {
	e := NewEditor()
	e.Insert("a")
	e.Insert("b")
	assert.Equal(t, "ab", e.Get())
	assert.Equal(t, 2, e.Cursor())

	e.Insert("héllo")
	assert.Equal(t, "abhéllo", e.Get())
	assert.Equal(t, 7, e.Cursor())
}

func TestEditor_InsertInMiddle(t *testing.T) {
	e := NewEditor()
	e.Set("hlp")
	e.Home()
	e.Right()
	e.Insert("e")
	assert.Equal(t, "help", e.Get())
	assert.Equal(t, 2, e.Cursor())

	before, after := e.Split()
	assert.Equal(t, "he", before)
	assert.Equal(t, "lp", after)
}

func TestEditor_CursorClamps(t *testing.T) {
	e := NewEditor()
	e.Set("ab")
	e.Right()
	assert.Equal(t, 2, e.Cursor())
	e.Left()
	e.Left()
	e.Left()
	assert.Equal(t, 0, e.Cursor())
	e.End()
	assert.Equal(t, 2, e.Cursor())
}

func TestEditor_BackspaceAndDelete(t *testing.T) {
	e := NewEditor()
	e.Set("abc")

	e.Backspace()
	assert.Equal(t, "ab", e.Get())
	assert.Equal(t, 2, e.Cursor())

	e.Home()
	e.Backspace()
	assert.Equal(t, "ab", e.Get())

	e.Delete()
	assert.Equal(t, "b", e.Get())
	assert.Equal(t, 0, e.Cursor())

	e.End()
	e.Delete()
	assert.Equal(t, "b", e.Get())
}

func TestEditor_Kill(t *testing.T) {
	e := NewEditor()
	e.Set("about me")
	e.Home()
	for i := 0; i < 5; i++ {
		e.Right()
	}
	e.KillToEnd()
	assert.Equal(t, "about", e.Get())
	assert.Equal(t, 5, e.Cursor())

	e.Left()
	e.KillToStart()
	assert.Equal(t, "t", e.Get())
	assert.Equal(t, 0, e.Cursor())
}

func TestEditor_Clear(t *testing.T) {
	e := NewEditor()
	e.Set("test")
	assert.False(t, e.IsEmpty())
	e.Clear()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, 0, e.Cursor())
}

func TestRecallLog_Navigation(t *testing.T) {
	r := NewRecallLog()
	r.Add("help")
	r.Add("about")

	cmd, ok := r.Older()
	assert.True(t, ok)
	assert.Equal(t, "about", cmd)

	cmd, ok = r.Older()
	assert.True(t, ok)
	assert.Equal(t, "help", cmd)

	_, ok = r.Older()
	assert.False(t, ok, "no entry older than the first")
	assert.Equal(t, 1, r.Index())

	cmd, ok = r.Newer()
	assert.True(t, ok)
	assert.Equal(t, "about", cmd)

	cmd, ok = r.Newer()
	assert.True(t, ok)
	assert.Equal(t, "", cmd)
	assert.Equal(t, -1, r.Index())

	_, ok = r.Newer()
	assert.False(t, ok)
}

func TestRecallLog_AddResetsBrowsingAndKeepsDuplicates(t *testing.T) {
	r := NewRecallLog()
	r.Add("help")
	r.Add("help")
	r.Add("")
	assert.Equal(t, 2, r.Size())

	r.Older()
	assert.Equal(t, 0, r.Index())
	r.Add("skills")
	assert.Equal(t, -1, r.Index())

	cmd, _ := r.Older()
	assert.Equal(t, "skills", cmd)
}

func TestRecallLog_EmptyLog(t *testing.T) {
	r := NewRecallLog()
	_, ok := r.Older()
	assert.False(t, ok)
	_, ok = r.Newer()
	assert.False(t, ok)
}
