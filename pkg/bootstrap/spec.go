// Package bootstrap prepares an Azure environment for an autoscaling
// cluster: resource group, identity, SSH key pair, network (or container
// group for the ACI provider) and node template defaults. Every stage is an
// idempotent ensure-or-create, safe to re-run against an already configured
// environment.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
)

const (
	// Namespace prefixes every resource and file name owned by the
	// bootstrap pipeline.
	Namespace = "azlift"

	VnetName   = Namespace + "-vnet"
	SubnetName = Namespace + "-subnet"
	NSGName    = Namespace + "-nsg"

	vnetAddressPrefix   = "10.0.0.0/16"
	subnetAddressPrefix = "10.0.0.0/24"
	sshPort             = 22

	contributorRoleName = "Contributor"
	defaultIdentityName = Namespace + "-identity"

	passwordMinLength = 16

	defaultRetries      = 10
	roleAssignmentDelay = 3 * time.Second
	networkListDelay    = 1 * time.Second
)

// Spec carries the cloud configuration and local filesystem knobs for one
// bootstrap run against a cluster configuration.
type Spec struct {
	azhelpers.CloudConfiguration

	Config *config.Config

	// SSHDir holds generated key pairs, CredentialsDir generated service
	// principal credential files. Default ~/.ssh and ~/.azure.
	SSHDir         string
	CredentialsDir string

	retries             int
	roleAssignmentDelay time.Duration
	networkListDelay    time.Duration
}

// CreateSpec builds a Spec from the cluster configuration. Service
// principal credentials are taken from AZURE_CLIENT_ID/AZURE_CLIENT_SECRET
// when present; otherwise calls authenticate through the az CLI token
// cache, and the subscription is resolved from the az profile.
func CreateSpec(cfg *config.Config) (*Spec, error) {
	if cfg.Provider.Location == "" || cfg.Provider.ResourceGroup == "" {
		return nil, fmt.Errorf("provider location and resource_group are required")
	}

	cloudConfig := azhelpers.CloudConfiguration{
		CloudName:      azhelpers.AzurePublicCloudName,
		SubscriptionID: cfg.Provider.SubscriptionID,
		TenantID:       cfg.Provider.TenantID,
		ClientID:       os.Getenv("AZURE_CLIENT_ID"),
		ClientSecret:   os.Getenv("AZURE_CLIENT_SECRET"),
		GroupName:      cfg.Provider.ResourceGroup,
		GroupLocation:  cfg.Provider.Location,
		UserAgent:      Namespace,
	}
	if err := cloudConfig.ResolveSubscription(); err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &Spec{
		CloudConfiguration:  cloudConfig,
		Config:              cfg,
		SSHDir:              filepath.Join(home, ".ssh"),
		CredentialsDir:      filepath.Join(home, ".azure"),
		retries:             defaultRetries,
		roleAssignmentDelay: roleAssignmentDelay,
		networkListDelay:    networkListDelay,
	}, nil
}
