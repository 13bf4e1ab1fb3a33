package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts. It applies to
// every hasher.
const MaxPasswordBytes = 72

// Supported password hashing algorithms.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// ArgonParams tunes argon2id hashing.
type ArgonParams struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLen     int
	KeyLen      uint32
}

// DefaultArgon is used when argon2id is selected without explicit parameters.
var DefaultArgon = ArgonParams{
	Memory:      64 * 1024,
	Time:        3,
	Parallelism: 1,
	SaltLen:     16,
	KeyLen:      32,
}

// PasswordHasher produces self-describing password hashes.
type PasswordHasher struct {
	algorithm  string
	bcryptCost int
	argon      ArgonParams
}

// NewPasswordHasher builds a hasher for the named algorithm.
func NewPasswordHasher(algorithm string, bcryptCost int) (*PasswordHasher, error) {
	switch algorithm {
	case "", HasherBcrypt:
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range", bcryptCost)
		}
		return &PasswordHasher{algorithm: HasherBcrypt, bcryptCost: bcryptCost}, nil
	case HasherArgon2id:
		return &PasswordHasher{algorithm: HasherArgon2id, argon: DefaultArgon}, nil
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", algorithm)
	}
}

// Hash derives a stored hash for password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.algorithm == HasherArgon2id {
		return HashPasswordArgon2id(password, h.argon)
	}
	return HashPassword(password, h.bcryptCost)
}

// HashPassword hashes a plaintext password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// HashPasswordArgon2id hashes a password into the PHC string format
// $argon2id$v=19$m=<M>,t=<T>,p=<P>$<salt>$<key>.
func HashPasswordArgon2id(password string, p ArgonParams) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether candidate matches storedHash. Any malformed
// or unrecognized hash, and an empty candidate, yield false.
func VerifyPassword(candidate, storedHash string) bool {
	if candidate == "" || storedHash == "" {
		return false
	}
	switch {
	case strings.HasPrefix(storedHash, "$argon2id$"):
		return verifyArgon2id(candidate, storedHash)
	case strings.HasPrefix(storedHash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
	default:
		return false
	}
}

func verifyArgon2id(candidate, encoded string) bool {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil || p == 0 || t == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(candidate), salt, t, m, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
