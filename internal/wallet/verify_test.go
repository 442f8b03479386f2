package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"testing"
	"time"
)

const testDomain = "app.example.com"

func signedProof(t *testing.T, timestamp int64, domain string) (Account, ConnectProof) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	account := Account{
		Address:   "0x" + hex.EncodeToString(make([]byte, 32)),
		PublicKey: hex.EncodeToString(pub),
	}
	proof := ConnectProof{
		Timestamp: timestamp,
		Domain:    Domain{LengthBytes: len(domain), Value: domain},
		Payload:   "nonce-123",
	}

	msg := buildProofMessage(account.Address, proof)
	proof.Signature = base64.StdEncoding.EncodeToString(ed25519.Sign(priv, msg))

	return account, proof
}

func TestVerifyProof(t *testing.T) {
	account, proof := signedProof(t, time.Now().Unix(), testDomain)
	if err := VerifyProof(account, proof, testDomain); err != nil {
		t.Fatalf("valid proof rejected: %v", err)
	}
}

func TestVerifyProofExpired(t *testing.T) {
	stale := time.Now().Add(-ProofTTL - time.Minute).Unix()
	account, proof := signedProof(t, stale, testDomain)
	if err := VerifyProof(account, proof, testDomain); err == nil {
		t.Fatal("expired proof accepted")
	}
}

func TestVerifyProofWrongDomain(t *testing.T) {
	account, proof := signedProof(t, time.Now().Unix(), "evil.example.com")
	if err := VerifyProof(account, proof, testDomain); err == nil {
		t.Fatal("proof for another domain accepted")
	}
}

func TestVerifyProofTamperedPayload(t *testing.T) {
	account, proof := signedProof(t, time.Now().Unix(), testDomain)
	proof.Payload = "nonce-456"
	if err := VerifyProof(account, proof, testDomain); err == nil {
		t.Fatal("tampered payload accepted")
	}
}

func TestVerifyProofBadKey(t *testing.T) {
	account, proof := signedProof(t, time.Now().Unix(), testDomain)

	account.PublicKey = "zzzz"
	if err := VerifyProof(account, proof, testDomain); err == nil {
		t.Fatal("malformed public key accepted")
	}

	account.PublicKey = hex.EncodeToString(make([]byte, 16))
	if err := VerifyProof(account, proof, testDomain); err == nil {
		t.Fatal("short public key accepted")
	}
}

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		address string
		want    bool
	}{
		{"0x" + hex.EncodeToString(make([]byte, 32)), true},
		{"0X" + hex.EncodeToString(make([]byte, 32)), false},
		{"0x1234", false},
		{"", false},
		{hex.EncodeToString(make([]byte, 33)), false},
	}

	for _, tc := range cases {
		if got := ValidateAddress(tc.address); got != tc.want {
			t.Fatalf("ValidateAddress(%q) = %v; want %v", tc.address, got, tc.want)
		}
	}
}
