package main

import "testing"

func TestIsWeakSecret(t *testing.T) {
	cases := map[string]bool{
		"":                                  true,
		"short":                             true,
		"change-me-in-production":           true,
		"CHANGE-ME-please-0123456789abcdef": true,
		"k8Jd02mZq1Lx9Vb7Rt4Wn6Yc3Hs5Gf0Pe": false,
	}
	for secret, want := range cases {
		if got := isWeakSecret(secret); got != want {
			t.Fatalf("isWeakSecret(%q) = %v, want %v", secret, got, want)
		}
	}
}
