package keycode

import "testing"

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		k    KeyCode
		want bool
	}{
		{"unknown", Unknown, false},
		{"A", A, true},
		{"last defined", Iso102nd, true},
		{"sentinel", keyCodeCount, false},
		{"past sentinel", keyCodeCount + 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.k.Valid(); got != c.want {
				t.Errorf("%v.Valid() = %v, want %v", c.k, got, c.want)
			}
		})
	}
}

func TestStringKnownAndUnknown(t *testing.T) {
	if A.String() != "A" {
		t.Errorf("A.String() = %q, want %q", A.String(), "A")
	}
	if got := keyCodeCount.String(); got != "KeyCode(?)" {
		t.Errorf("keyCodeCount.String() = %q, want KeyCode(?)", got)
	}
}

func TestIsPhysicalModifier(t *testing.T) {
	for _, k := range []KeyCode{LShift, RShift, LCtrl, RCtrl, LAlt, RAlt, LMeta, RMeta} {
		if !k.IsPhysicalModifier() {
			t.Errorf("%v.IsPhysicalModifier() = false, want true", k)
		}
	}
	for _, k := range []KeyCode{A, Num1, Escape} {
		if k.IsPhysicalModifier() {
			t.Errorf("%v.IsPhysicalModifier() = true, want false", k)
		}
	}
}

func TestEvdevRoundTrip(t *testing.T) {
	for kc := Unknown + 1; kc < keyCodeCount; kc++ {
		code, ok := ToEvdev(kc)
		if !ok {
			continue
		}
		back, ok := FromEvdev(code)
		if !ok || back != kc {
			t.Errorf("round trip for %v: ToEvdev=%d, FromEvdev back=%v (ok=%v)", kc, code, back, ok)
		}
	}
}

func TestFromEvdevUnknownCode(t *testing.T) {
	if _, ok := FromEvdev(0xFFFF); ok {
		t.Error("expected unknown evdev code to report ok=false")
	}
}
