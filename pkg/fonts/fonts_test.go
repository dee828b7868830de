package fonts

import (
	"testing"

	"github.com/matzehuels/graphic/pkg/label"
)

func TestFor(t *testing.T) {
	regular := For(label.Roman)
	if regular == nil {
		t.Fatal("For(Roman) = nil")
	}
	if For(label.Symbol) != regular {
		t.Error("Symbol should share the regular face")
	}
	if For(label.Italic) == regular || For(label.Typewriter) == regular {
		t.Error("Italic and Typewriter should have their own faces")
	}
	if For(label.Font("cmbx10")) != regular {
		t.Error("unknown font should fall back to regular")
	}
}
