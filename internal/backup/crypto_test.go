package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.db")
	enc := filepath.Join(dir, "backup.enc")
	dec := filepath.Join(dir, "restored.db")

	content := []byte("shopping list snapshot payload")
	if err := os.WriteFile(src, content, 0600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}

	if err := EncryptFile(src, enc, "correct horse", salt); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	ciphertext, _ := os.ReadFile(enc)
	if bytes.Contains(ciphertext, content) {
		t.Error("ciphertext contains plaintext")
	}

	if err := DecryptFile(enc, dec, "correct horse"); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	restored, _ := os.ReadFile(dec)
	if !bytes.Equal(restored, content) {
		t.Errorf("restored = %q, want %q", restored, content)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.db")
	enc := filepath.Join(dir, "backup.enc")

	if err := os.WriteFile(src, []byte("payload"), 0600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	salt, _ := GenerateSalt()
	if err := EncryptFile(src, enc, "right", salt); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if err := DecryptFile(enc, filepath.Join(dir, "out.db"), "wrong"); err == nil {
		t.Error("expected error with wrong passphrase")
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt, _ := GenerateSalt()

	a := DeriveKey("pass", salt)
	b := DeriveKey("pass", salt)
	if !bytes.Equal(a, b) {
		t.Error("same passphrase and salt must derive the same key")
	}

	otherSalt, _ := GenerateSalt()
	c := DeriveKey("pass", otherSalt)
	if bytes.Equal(a, c) {
		t.Error("different salt must derive a different key")
	}
}
