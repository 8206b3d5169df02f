package bootstrap

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2018-12-01/network"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
	"github.com/azlift/azlift/pkg/helpers"
)

type networkAPI interface {
	FindVirtualNetwork(ctx context.Context, vnetName string) (*network.VirtualNetwork, error)
	CreateVirtualNetwork(ctx context.Context, vnetName, addressPrefix string) error
	CreateOrUpdateSubnet(ctx context.Context, vnetName, subnetName, addressPrefix string) (network.Subnet, error)
	CreateNetworkSecurityGroup(ctx context.Context, nsgName string, port int32) (network.SecurityGroup, error)
}

// ConfigureNetwork ensures the virtual network, subnet and security group
// and persists the subnet id into the configuration. Skipped entirely when
// the subnet is already pinned or both node templates bring their own
// network interfaces.
func (spec *Spec) ConfigureNetwork(ctx context.Context) error {
	return configureNetwork(ctx, &spec.CloudConfiguration, spec.Config, spec.retries, spec.networkListDelay)
}

func configureNetwork(ctx context.Context, client networkAPI, cfg *config.Config, retries int, delay time.Duration) error {
	if cfg.Provider.SubnetID != "" {
		return nil
	}
	if cfg.HeadNode.HasNetworkInterfaces() && cfg.WorkerNodes.HasNetworkInterfaces() {
		return nil
	}

	// Listing may fail with authentication errors until the token grants of
	// a freshly created identity propagate.
	var vnet *network.VirtualNetwork
	err := helpers.Retry(ctx, retries, delay, azhelpers.IsAuthenticationFailure, func() error {
		found, err := client.FindVirtualNetwork(ctx, VnetName)
		if err != nil {
			return err
		}
		vnet = found
		return nil
	})
	if err != nil {
		if !azhelpers.IsAuthenticationFailure(err) {
			return err
		}
		// fall through to creation, an existing vnet would have listed
		vnet = nil
	}

	// An existing vnet is left untouched: updating it would drop subnets
	// already attached.
	if vnet == nil {
		log.Info("Creating", "VNet", VnetName)
		if err := client.CreateVirtualNetwork(ctx, VnetName, vnetAddressPrefix); err != nil {
			return err
		}
		log.Info("Successfully Created", "VNet", VnetName)
	}

	log.Info("Creating", "Subnet", SubnetName)
	subnet, err := client.CreateOrUpdateSubnet(ctx, VnetName, SubnetName, subnetAddressPrefix)
	if err != nil {
		return err
	}
	if subnet.ID != nil {
		cfg.Provider.SubnetID = *subnet.ID
	}
	log.Info("Successfully Created", "Subnet", SubnetName)

	log.Info("Creating", "NetworkSecurityGroup", NSGName)
	if _, err := client.CreateNetworkSecurityGroup(ctx, NSGName, sshPort); err != nil {
		return err
	}
	log.Info("Successfully Created", "NetworkSecurityGroup", NSGName)

	return nil
}
