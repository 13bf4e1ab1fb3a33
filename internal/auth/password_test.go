package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

var testArgon = ArgonParams{Memory: 1024, Time: 1, Parallelism: 1, SaltLen: 8, KeyLen: 16}

func TestVerifyPassword(t *testing.T) {
	bcryptHash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	argonHash, err := HashPasswordArgon2id("correct horse", testArgon)
	if err != nil {
		t.Fatalf("HashPasswordArgon2id() error = %v", err)
	}
	if !strings.HasPrefix(argonHash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected argon2id encoding %q", argonHash)
	}

	for name, hash := range map[string]string{"bcrypt": bcryptHash, "argon2id": argonHash} {
		t.Run(name, func(t *testing.T) {
			tests := []struct {
				candidate string
				want      bool
			}{
				{"correct horse", true},
				{"correct hors", false},
				{"Correct horse", false},
				{"correct horsf", false},
				{"correct horse ", false},
				{"", false},
			}
			for _, tt := range tests {
				if got := VerifyPassword(tt.candidate, hash); got != tt.want {
					t.Errorf("VerifyPassword(%q) = %v, want %v", tt.candidate, got, tt.want)
				}
			}
		})
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	hashes := []string{
		"",
		"plaintext",
		"$2b$04$tooshort",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$garbage$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$",
	}
	for _, h := range hashes {
		if VerifyPassword("password", h) {
			t.Errorf("VerifyPassword accepted malformed hash %q", h)
		}
	}
}

func TestPasswordHasher(t *testing.T) {
	tests := []struct {
		algorithm string
		cost      int
		prefix    string
		wantErr   bool
	}{
		{algorithm: HasherBcrypt, cost: bcrypt.MinCost, prefix: "$2"},
		{algorithm: "", cost: bcrypt.MinCost, prefix: "$2"},
		{algorithm: HasherBcrypt, cost: 99, wantErr: true},
		{algorithm: "md5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			h, err := NewPasswordHasher(tt.algorithm, tt.cost)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewPasswordHasher() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPasswordHasher() error = %v", err)
			}
			hash, err := h.Hash("s3cret-pass")
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !strings.HasPrefix(hash, tt.prefix) {
				t.Errorf("hash %q lacks prefix %q", hash, tt.prefix)
			}
			if !VerifyPassword("s3cret-pass", hash) {
				t.Error("VerifyPassword rejected its own hash")
			}
		})
	}
}
