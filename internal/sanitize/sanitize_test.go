package sanitize

import "testing"

func TestText_PlainStringUnchanged(t *testing.T) {
	if got := Text("Boda García"); got != "Boda García" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestText_StripsMarkup(t *testing.T) {
	got := Text(`<script>alert(1)</script>Quinceañera <b>Pérez</b>`)
	if got != "Quinceañera Pérez" {
		t.Errorf("expected markup stripped, got %q", got)
	}
}

func TestText_Empty(t *testing.T) {
	if got := Text(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
