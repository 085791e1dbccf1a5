// Package cryptox derives the login verifier on the client so the password
// itself never leaves the machine. The server only stores salt and verifier.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// DeriveMasterKey stretches password with argon2id (t=1, 64 MiB, 4 lanes).
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier is what the server compares on login.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// LoginVerifier runs both steps for a password/salt pair.
func LoginVerifier(password []byte, salt []byte) []byte {
	return MakeVerifier(DeriveMasterKey(password, salt))
}
