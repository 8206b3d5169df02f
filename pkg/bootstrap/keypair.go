package bootstrap

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/azlift/azlift/pkg/config"
	"github.com/azlift/azlift/pkg/helpers"
)

// ConfigureKeyPair ensures a local SSH key pair and injects its public key
// into both node templates. A manually configured private key is verified
// to exist and the templates must already carry public key material;
// otherwise a deterministic pair is reused or generated under SSHDir.
func (spec *Spec) ConfigureKeyPair() error {
	return configureKeyPair(spec.Config, spec.SSHDir)
}

func configureKeyPair(cfg *config.Config, sshDir string) error {
	if cfg.Auth.SSHPrivateKey != "" {
		if _, err := os.Stat(cfg.Auth.SSHPrivateKey); err != nil {
			return errors.Wrapf(err, "configured ssh private key %s is not usable", cfg.Auth.SSHPrivateKey)
		}
		if !cfg.HeadNode.HasSSHPublicKeys() || !cfg.WorkerNodes.HasSSHPublicKeys() {
			return errors.New("ssh_private_key is set but node templates carry no ssh public keys")
		}
		return nil
	}

	keyName := fmt.Sprintf("%s_azure_%s_%s_%s",
		Namespace, cfg.Provider.Location, cfg.Provider.ResourceGroup, cfg.Auth.SSHUser)
	privateKeyPath := filepath.Join(sshDir, keyName+".pem")
	publicKeyPath := filepath.Join(sshDir, keyName+".pub")

	var publicKey string
	if fileExists(privateKeyPath) && fileExists(publicKeyPath) {
		buf, err := ioutil.ReadFile(publicKeyPath)
		if err != nil {
			return errors.Wrapf(err, "cannot read public key %s", publicKeyPath)
		}
		publicKey = string(buf)
		log.Info("SSH key pair found", "Name", keyName)
	} else {
		keyPair, err := helpers.GenerateSSHKeyPair()
		if err != nil {
			return err
		}
		if err := keyPair.WriteTo(privateKeyPath, publicKeyPath); err != nil {
			return err
		}
		publicKey = string(keyPair.PublicKey)
		log.Info("SSH key pair created", "Name", keyName)
	}

	cfg.Auth.SSHPrivateKey = privateKeyPath
	cfg.Auth.SSHPublicKey = publicKeyPath

	publicKeys := []config.SSHPublicKey{
		{
			KeyData: strings.TrimSpace(publicKey),
			Path:    fmt.Sprintf("/home/%s/.ssh/authorized_keys", cfg.Auth.SSHUser),
		},
	}
	for _, node := range []**config.NodeConfig{&cfg.HeadNode, &cfg.WorkerNodes} {
		if *node == nil {
			*node = &config.NodeConfig{}
		}
		if (*node).OSProfile == nil {
			(*node).OSProfile = config.DefaultHeadNodeConfig().OSProfile
		}
		if (*node).OSProfile.LinuxConfiguration == nil {
			(*node).OSProfile.LinuxConfiguration = &config.LinuxConfiguration{
				DisablePasswordAuthentication: true,
			}
		}
		(*node).OSProfile.LinuxConfiguration.SSH.PublicKeys = publicKeys
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
