package helpers

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
)

const rsaKeyBits = 2048

// SSHKeyPair holds a generated key pair, private key PEM encoded and public
// key in authorized_keys format.
type SSHKeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
}

// GenerateSSHKeyPair generates a new 2048 bit RSA key pair.
func GenerateSSHKeyPair() (*SSHKeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("cannot generate rsa key: %v", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create ssh public key: %v", err)
	}

	return &SSHKeyPair{
		PrivateKey: privatePEM,
		PublicKey:  ssh.MarshalAuthorizedKey(publicKey),
	}, nil
}

// WriteTo stores the key pair on disk, private key with owner only read,
// public key world readable, creating the containing directory with owner
// only access when missing.
func (kp *SSHKeyPair) WriteTo(privateKeyPath, publicKeyPath string) error {
	dir := filepath.Dir(privateKeyPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("cannot create key directory %s: %v", dir, err)
		}
	}

	if err := ioutil.WriteFile(privateKeyPath, kp.PrivateKey, 0600); err != nil {
		return fmt.Errorf("cannot write private key %s: %v", privateKeyPath, err)
	}

	if err := ioutil.WriteFile(publicKeyPath, kp.PublicKey, 0644); err != nil {
		return fmt.Errorf("cannot write public key %s: %v", publicKeyPath, err)
	}

	return nil
}
