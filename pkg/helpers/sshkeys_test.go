package helpers

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateSSHKeyPair(t *testing.T) {
	keyPair, err := GenerateSSHKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}

	block, _ := pem.Decode(keyPair.PrivateKey)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		t.Fatalf("Expected RSA PRIVATE KEY PEM block, got: %v", block)
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		t.Fatalf("Failed to parse private key: %v", err)
	}

	if !bytes.HasPrefix(keyPair.PublicKey, []byte("ssh-rsa ")) {
		t.Fatalf("Expected authorized_keys format public key, got: %q", keyPair.PublicKey)
	}
}

func TestSSHKeyPairWriteTo(t *testing.T) {
	dir, err := ioutil.TempDir("", "sshkeys")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	keyPair, err := GenerateSSHKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}

	keyDir := filepath.Join(dir, "keys")
	privateKeyPath := filepath.Join(keyDir, "id.pem")
	publicKeyPath := filepath.Join(keyDir, "id.pub")
	if err := keyPair.WriteTo(privateKeyPath, publicKeyPath); err != nil {
		t.Fatalf("Failed to write key pair: %v", err)
	}

	dirInfo, err := os.Stat(keyDir)
	if err != nil {
		t.Fatalf("Failed to stat key directory: %v", err)
	}
	if mode := dirInfo.Mode().Perm(); mode != 0700 {
		t.Fatalf("Expected key directory mode 0700, got: %o", mode)
	}

	privateInfo, err := os.Stat(privateKeyPath)
	if err != nil {
		t.Fatalf("Failed to stat private key: %v", err)
	}
	if mode := privateInfo.Mode().Perm(); mode != 0600 {
		t.Fatalf("Expected private key mode 0600, got: %o", mode)
	}

	publicInfo, err := os.Stat(publicKeyPath)
	if err != nil {
		t.Fatalf("Failed to stat public key: %v", err)
	}
	if mode := publicInfo.Mode().Perm(); mode != 0644 {
		t.Fatalf("Expected public key mode 0644, got: %o", mode)
	}

	buf, err := ioutil.ReadFile(publicKeyPath)
	if err != nil {
		t.Fatalf("Failed to read public key: %v", err)
	}
	if !bytes.Equal(buf, keyPair.PublicKey) {
		t.Fatal("Public key on disk differs from generated key")
	}
}
