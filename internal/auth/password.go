// Package auth hashes passwords, binds users to browser sessions and guards
// routes that need a logged in user or the administrator.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashMethod     = "pbkdf2"
	hashAlgorithm  = "sha256"
	hashIterations = 600000
	saltLength     = 16
	saltChars      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// HashPassword derives a salted PBKDF2-SHA256 digest of the form
// pbkdf2:sha256:<iterations>$<salt>$<hex>. Every call uses a fresh salt.
func HashPassword(password string) (string, error) {
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	sum := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, sha256.Size, sha256.New)
	return fmt.Sprintf("%s:%s:%d$%s$%s", hashMethod, hashAlgorithm, hashIterations, salt, hex.EncodeToString(sum)), nil
}

// VerifyPassword reports whether password matches digest. Malformed digests never match.
func VerifyPassword(digest, password string) bool {
	method, rest, ok := strings.Cut(digest, "$")
	if !ok {
		return false
	}
	salt, want, ok := strings.Cut(rest, "$")
	if !ok || salt == "" {
		return false
	}

	parts := strings.Split(method, ":")
	if len(parts) != 3 || parts[0] != hashMethod || parts[1] != hashAlgorithm {
		return false
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false
	}

	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) != sha256.Size {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

func randomSalt(n int) (string, error) {
	max := big.NewInt(int64(len(saltChars)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = saltChars[idx.Int64()]
	}
	return string(buf), nil
}
