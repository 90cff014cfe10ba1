package hotkey

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/autotype/internal/model"
)

func TestParseSpecDefault(t *testing.T) {
	chord, err := ParseSpec(DefaultSpec)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if chord.Key != "f9" || !reflect.DeepEqual(chord.Modifiers, []string{"ctrl"}) {
		t.Fatalf("unexpected chord %+v", chord)
	}
	if chord.String() != "CTRL+F9" {
		t.Fatalf("unexpected display %q", chord.String())
	}
	if !reflect.DeepEqual(chord.Keys(), []string{"f9", "ctrl"}) {
		t.Fatalf("unexpected keys %v", chord.Keys())
	}
}

func TestParseSpecNormalizesModifiers(t *testing.T) {
	chord, err := ParseSpec(" Alt + Control + K + shift ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if chord.Key != "k" || !reflect.DeepEqual(chord.Modifiers, []string{"ctrl", "shift", "alt"}) {
		t.Fatalf("unexpected chord %+v", chord)
	}
}

func TestParseSpecErrors(t *testing.T) {
	for _, spec := range []string{"", "ctrl+", "ctrl+shift", "a+b", "ctrl+control+x"} {
		_, err := ParseSpec(spec)
		var cfgErr *model.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("%q: expected ConfigError, got %v", spec, err)
		}
		if cfgErr.Field != "hotkey" {
			t.Fatalf("%q: unexpected field %q", spec, cfgErr.Field)
		}
	}
}

func TestDebounceDropsRepeats(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	calls := 0
	fn := Debounce(func() { calls++ }, 300*time.Millisecond, clock)

	fn()
	now = now.Add(100 * time.Millisecond)
	fn()
	now = now.Add(250 * time.Millisecond)
	fn()
	if calls != 2 {
		t.Fatalf("expected 2 accepted activations, got %d", calls)
	}
}
