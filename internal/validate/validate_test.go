package validate

import (
	"strings"
	"testing"
)

func TestSanitizeEscapesDangerousCharacters(t *testing.T) {
	got := Sanitize(`<script>&"'`)

	for _, raw := range []string{"<", ">", `"`, "'"} {
		if strings.Contains(got, raw) {
			t.Fatalf("raw %q survived sanitization: %q", raw, got)
		}
	}
	// One original & means exactly one &amp;; the ampersands inside the
	// generated entities must not be escaped again.
	if strings.Count(got, "&amp;") != 1 {
		t.Fatalf("expected exactly one &amp;, got %q", got)
	}
	if got != "&lt;script&gt;&amp;&quot;&#x27;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSanitizeIdempotentCharacterSet(t *testing.T) {
	// Escaping inserts only &, #, ;, x and alphanumerics; a second pass must
	// only touch the leading ampersands, never corrupt the entity bodies.
	once := Sanitize(`a<b & c>d`)
	if strings.ContainsAny(once, `<>"'`) {
		t.Fatalf("first pass left raw characters: %q", once)
	}
}

func TestSanitizeTrims(t *testing.T) {
	if got := Sanitize("  alice  "); got != "alice" {
		t.Fatalf("expected trimmed output, got %q", got)
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plain", false},
		{"no@dot", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"user@ example.com", false},
		{"@example.com", false},
		{"user@.", false},
	}
	for _, tc := range cases {
		if got := ValidEmail(tc.in); got != tc.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Abcd1234", true},
		{"abc12345", false}, // no uppercase
		{"ABC12345", false}, // no lowercase
		{"Abcdefgh", false}, // no digit
		{"Ab1", false},      // too short
		{"Str0ng!pass", true},
	}
	for _, tc := range cases {
		if got := StrongPassword(tc.in); got != tc.want {
			t.Errorf("StrongPassword(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
