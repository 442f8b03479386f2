// Package wallet verifies wallet-connect ownership proofs: the client signs
// a domain-bound message with the wallet's ed25519 key, the server checks
// the signature before trusting the address.
package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ProofTTL is how long a wallet-connect proof stays valid
const ProofTTL = 15 * time.Minute

// ConnectProof represents the signed proof sent by the wallet
type ConnectProof struct {
	Timestamp int64  `json:"timestamp"`
	Domain    Domain `json:"domain"`
	Signature string `json:"signature"`
	Payload   string `json:"payload"`
}

// Domain represents the domain part of the proof
type Domain struct {
	LengthBytes int    `json:"lengthBytes"`
	Value       string `json:"value"`
}

// Account represents the wallet account claiming ownership
type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

// VerifyProof verifies a wallet ownership proof against the expected domain
func VerifyProof(account Account, proof ConnectProof, allowedDomain string) error {
	proofTime := time.Unix(proof.Timestamp, 0)
	if time.Since(proofTime) > ProofTTL {
		return errors.New("proof expired")
	}

	if proof.Domain.Value != allowedDomain {
		return fmt.Errorf("domain mismatch: expected %s, got %s", allowedDomain, proof.Domain.Value)
	}

	pubKeyBytes, err := hex.DecodeString(account.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid public key format: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return errors.New("invalid public key size")
	}

	signatureBytes, err := base64.StdEncoding.DecodeString(proof.Signature)
	if err != nil {
		return fmt.Errorf("invalid signature format: %w", err)
	}

	message := buildProofMessage(account.Address, proof)

	if !ed25519.Verify(pubKeyBytes, message, signatureBytes) {
		return errors.New("invalid signature")
	}

	return nil
}

// buildProofMessage constructs the message the wallet signed:
// prefix + address + domain_len (4 bytes LE) + domain + timestamp (8 bytes LE)
// + payload, double-hashed with an app prefix.
func buildProofMessage(address string, proof ConnectProof) []byte {
	var message []byte

	message = append(message, []byte("wallet-proof-v1/")...)
	message = append(message, []byte(address)...)

	domainLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(domainLen, uint32(proof.Domain.LengthBytes))
	message = append(message, domainLen...)
	message = append(message, []byte(proof.Domain.Value)...)

	timestamp := make([]byte, 8)
	binary.LittleEndian.PutUint64(timestamp, uint64(proof.Timestamp))
	message = append(message, timestamp...)

	message = append(message, []byte(proof.Payload)...)

	hash := sha256.Sum256(message)
	finalMessage := append([]byte("defi-quest"), hash[:]...)
	finalHash := sha256.Sum256(finalMessage)

	return finalHash[:]
}

// ValidateAddress checks the wallet address format: 0x-prefixed hex of a
// 32-byte account id.
func ValidateAddress(address string) bool {
	if len(address) != 66 || address[0:2] != "0x" {
		return false
	}
	_, err := hex.DecodeString(address[2:])
	return err == nil
}
