package hash

import (
	"regexp"
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestShortHash(t *testing.T) {
	full := SHA256Hex("192.168.1.1")

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"12 char prefix", 12, full[:12]},
		{"full hash if n too long", 100, full},
		{"full hash if n is zero", 0, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortHash("192.168.1.1", tt.n)
			if got != tt.want {
				t.Errorf("ShortHash(_, %d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

var queryIDRe = regexp.MustCompile(`^q_[a-z0-9]{8}$`)

func TestNewQueryID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := NewQueryID()
		if !queryIDRe.MatchString(id) {
			t.Fatalf("NewQueryID() = %q, want q_ + 8 lowercase alphanumerics", id)
		}
		seen[id] = true
	}
	// 36^8 space; collisions in 200 draws would indicate a broken source
	if len(seen) < 199 {
		t.Errorf("got %d unique IDs out of 200", len(seen))
	}
}
