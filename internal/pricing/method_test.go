package pricing

import "testing"

func TestNormalizeMethod(t *testing.T) {
	cases := map[string]Method{
		"dtf":             MethodDTF,
		"dtg":             MethodDTG,
		"screen_printing": MethodScreenPrinting,
		"embroidery":      MethodEmbroidery,
		"applique":        MethodApplique,
		"printing":        MethodDTF, // deprecated alias
		"":                MethodDTF,
		"  DTG  ":         MethodDTG,
		"laser_engraving": MethodDTF, // unknown methods never block pricing
	}

	for raw, want := range cases {
		if got := NormalizeMethod(raw); got != want {
			t.Errorf("NormalizeMethod(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestMethodTiered(t *testing.T) {
	for _, m := range Methods() {
		tiered := m.Tiered()
		switch m {
		case MethodDTF, MethodDTG:
			if tiered {
				t.Errorf("%s should be flat", m)
			}
		default:
			if !tiered {
				t.Errorf("%s should be tiered", m)
			}
		}
	}
}
