package platform

import (
	"testing"

	"github.com/taigrr/tessera/pkg/control"
)

func TestNotifyKeepsLatest(t *testing.T) {
	ch := make(chan Size, 1)
	notify(ch, Size{640, 480})
	notify(ch, Size{800, 600})
	notify(ch, Size{1024, 768})

	if got := <-ch; got != (Size{1024, 768}) {
		t.Errorf("size = %v, want the latest", got)
	}
	select {
	case s := <-ch:
		t.Errorf("unexpected pending size %v", s)
	default:
	}
}

func TestDefaultBindingsHaveKeys(t *testing.T) {
	for _, name := range control.NewKeyboard(nil).Names() {
		if _, ok := keys[name]; !ok {
			t.Errorf("bound key %q has no GLFW key", name)
		}
	}
}
