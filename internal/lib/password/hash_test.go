package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "regular password",
			password: "password123",
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
		},
		{
			name:     "single char",
			password: "p",
		},
		{
			name:     "exactly 72 bytes",
			password: strings.Repeat("a", MaxLength),
		},
		{
			name:     "73 bytes",
			password: strings.Repeat("a", MaxLength+1),
			wantErr:  ErrTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := Hash(tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Hash() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Hash() unexpected error: %v", err)
			}
			if gotHash == "" || gotHash == tt.password {
				t.Fatalf("Hash() returned %q", gotHash)
			}
			if err := Compare(gotHash, tt.password); err != nil {
				t.Errorf("generated hash doesn't match original password: %v", err)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	correctHash, err := Hash("correct_password")
	if err != nil {
		t.Fatalf("failed to create test hash: %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{
			name:     "matching password",
			hash:     correctHash,
			password: "correct_password",
		},
		{
			name:     "wrong password",
			hash:     correctHash,
			password: "wrong_password",
			wantErr:  ErrMismatch,
		},
		{
			name:     "empty password",
			hash:     correctHash,
			password: "",
			wantErr:  ErrMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(tt.hash, tt.password)
			if tt.wantErr == nil && err != nil {
				t.Errorf("Compare() should succeed, got error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Compare() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompare_CorruptedHash(t *testing.T) {
	err := Compare("not-a-bcrypt-hash", "password")
	if err == nil {
		t.Fatal("Compare() should fail on corrupted hash")
	}
	if errors.Is(err, ErrMismatch) {
		t.Error("corrupted hash must not be reported as a mismatch")
	}
}

func TestHash_SamePasswordDifferentSalt(t *testing.T) {
	hash1, err := Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hash2, err := Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash1 == hash2 {
		t.Error("same password produced identical hashes")
	}
}

func TestCompare_TooLongPassword(t *testing.T) {
	hash, err := Hash(strings.Repeat("a", MaxLength))
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	err = Compare(hash, strings.Repeat("a", MaxLength+1))
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("Compare() error = %v, want ErrMismatch", err)
	}
}
