package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const resetTokenBytes = 32

// ResetTokenGenerator implementa ports.ResetTokens com 32 bytes aleatórios em hex
// e SHA-256 como hash persistido.
type ResetTokenGenerator struct{}

func NewResetTokenGenerator() ResetTokenGenerator {
	return ResetTokenGenerator{}
}

func (ResetTokenGenerator) Generate() (string, string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain := hex.EncodeToString(buf)
	return plain, hashResetToken(plain), nil
}

func (ResetTokenGenerator) Hash(plain string) string {
	return hashResetToken(plain)
}

func hashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
