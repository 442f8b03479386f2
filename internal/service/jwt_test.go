package service

import (
	"testing"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	InitJWT("test-secret-do-not-use")
}

func TestJWTRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID = %d; want 42", userID)
	}
}

func TestJWTTampered(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	// flip a character in the signature
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseJWT(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestJWTGarbage(t *testing.T) {
	initTestJWT(t)

	for _, token := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := ParseJWT(token); err == nil {
			t.Fatalf("garbage token %q accepted", token)
		}
	}
}

func TestInitJWTEmptySecret(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("InitJWT with empty secret did not panic")
		}
	}()
	InitJWT("")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPassword(hash, "hunter22") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Fatal("wrong password accepted")
	}
	if CheckPassword("", "hunter22") {
		t.Fatal("empty hash accepted")
	}
}
