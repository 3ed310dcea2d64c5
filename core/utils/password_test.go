package utils

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hashed == "correct horse battery staple" {
		t.Fatal("password stored in plain text")
	}

	if !ComparePassword(hashed, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if ComparePassword(hashed, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	b, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}
