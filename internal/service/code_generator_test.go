package service

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

var codePattern = regexp.MustCompile(`^([A-Z0-9_ ]{1,4})-(\d{10})-([A-Z0-9]{4})-([A-Z0-9]{4})-([A-Z0-9]{4})-([A-Z0-9]{4})$`)

func TestCodeGeneratorFormat(t *testing.T) {
	fixed := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)
	gen := NewCodeGenerator().WithClock(func() time.Time { return fixed })

	code, err := gen.Generate("pubg")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	match := codePattern.FindStringSubmatch(code)
	if match == nil {
		t.Fatalf("unexpected code format: %s", code)
	}
	if match[1] != "PUBG" {
		t.Fatalf("unexpected prefix: %s", match[1])
	}
	if match[2] != "2503070905" {
		t.Fatalf("unexpected timestamp: %s", match[2])
	}
}

func TestCodeGeneratorPrefixRules(t *testing.T) {
	cases := map[string]string{
		"pubg":      "PUBG",
		"free_fire": "FREE",
		"lol":       "LOL",
		"":          "CODE",
		"   ":       "CODE",
	}
	for itemType, want := range cases {
		if got := codePrefix(itemType); got != want {
			t.Fatalf("codePrefix(%q) = %q, want %q", itemType, got, want)
		}
	}
}

func TestCodeGeneratorUniqueness(t *testing.T) {
	gen := NewCodeGenerator()
	seen := make(map[string]struct{}, 2000)
	for i := 0; i < 2000; i++ {
		code, err := gen.Generate("pubg")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if _, ok := seen[code]; ok {
			t.Fatalf("duplicate code generated: %s", code)
		}
		seen[code] = struct{}{}
	}
}

func TestCodeGeneratorRandomFailure(t *testing.T) {
	gen := NewCodeGenerator()
	gen.random = func(int) (int, error) { return 0, errors.New("entropy exhausted") }
	if _, err := gen.Generate("pubg"); err == nil {
		t.Fatalf("expected random source error")
	}
}
