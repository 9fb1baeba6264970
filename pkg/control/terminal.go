package control

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalKeys feeds ultraviolet key events into a Keyboard.
//
// Most terminals never report key releases. Until a release is seen, a
// press only holds its key until EndFrame, and auto-repeat keeps it alive.
type TerminalKeys struct {
	kb       *Keyboard
	releases bool
}

// NewTerminalKeys returns a source writing to kb.
func NewTerminalKeys(kb *Keyboard) *TerminalKeys {
	return &TerminalKeys{kb: kb}
}

// HandleEvent applies ev and reports whether it was a bound key.
func (t *TerminalKeys) HandleEvent(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return t.kb.Key(keyName(uv.Key(ev)), true)
	case uv.KeyReleaseEvent:
		t.releases = true
		return t.kb.Key(keyName(uv.Key(ev)), false)
	}
	return false
}

// EndFrame lifts held keys when the terminal does not report releases.
func (t *TerminalKeys) EndFrame() {
	if !t.releases {
		t.kb.ReleaseAll()
	}
}

// keyName returns the lower case name a Keyboard binds, ignoring
// modifiers.
func keyName(k uv.Key) string {
	code := k.Code
	if k.BaseCode != 0 {
		code = k.BaseCode
	}
	k = uv.Key{Code: code}
	return k.String()
}
