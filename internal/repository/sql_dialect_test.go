package repository

import "testing"

func TestSupportsRowLock(t *testing.T) {
	cases := map[string]bool{
		"postgres":   true,
		"PostgreSQL": true,
		"mysql":      true,
		"sqlite":     false,
		"":           false,
	}
	for dialect, want := range cases {
		if got := supportsRowLock(dialect); got != want {
			t.Fatalf("supportsRowLock(%q) = %v, want %v", dialect, got, want)
		}
	}
}

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("unexpected dialect: %s", got)
	}
}
