package fonts

import (
	"bytes"
	"testing"
)

func TestLoadResolvesCoreFontNames(t *testing.T) {
	regular, err := Load("Helvetica", false)
	if err != nil {
		t.Fatalf("load Helvetica: %v", err)
	}
	bold, err := Load("helvetica", true)
	if err != nil {
		t.Fatalf("load Helvetica bold: %v", err)
	}
	if len(regular) == 0 || bytes.Equal(regular, bold) {
		t.Fatalf("regular and bold faces must differ")
	}
	mono, err := Load("Courier", false)
	if err != nil {
		t.Fatalf("load Courier: %v", err)
	}
	if bytes.Equal(mono, regular) {
		t.Fatalf("Courier should map to the monospace face")
	}
}

func TestLoadUnknownFamily(t *testing.T) {
	if _, err := Load("Comic Sans", false); err == nil {
		t.Fatalf("expected error for unknown family")
	}
	if _, ok := Resolve("Comic Sans"); ok {
		t.Fatalf("unknown family must not resolve")
	}
}
