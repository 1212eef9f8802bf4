package auth

import (
	"strings"
	"testing"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
	if err := ComparePasswordHash(hash, "correct horse battery"); err != nil {
		t.Errorf("compare with correct password failed: %v", err)
	}
	if err := ComparePasswordHash(hash, "wrong password!"); err == nil {
		t.Error("compare with wrong password succeeded")
	}
}

func TestHashPasswordPolicy(t *testing.T) {
	cases := []struct {
		name  string
		plain string
	}{
		{"empty", ""},
		{"too short", "seven77"},
		{"past bcrypt limit", strings.Repeat("a", 73)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := HashPassword(tc.plain)
			if err == nil {
				t.Fatal("policy violation accepted")
			}
			if !IsPasswordValidationError(err) {
				t.Errorf("policy error not recognized: %v", err)
			}
		})
	}
}

func TestComparePasswordHashEmptyPassword(t *testing.T) {
	hash, err := HashPassword("long enough password")
	if err != nil {
		t.Fatal(err)
	}
	if err := ComparePasswordHash(hash, ""); err == nil {
		t.Error("empty password accepted")
	}
}
