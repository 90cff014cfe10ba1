package audio

import "testing"

func TestParseKind(t *testing.T) {
	cases := map[string]string{
		"tone":    KindTone,
		" System": KindSystem,
		"OFF":     KindOff,
		"":        KindOff,
		"none":    KindOff,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := ParseKind("trumpet"); err == nil {
		t.Fatalf("expected error for unknown cue")
	}
}

func TestNopIsSilent(t *testing.T) {
	var c Cue = Nop{}
	c.Beep(DefaultFreq, DefaultDurationMs)
}
