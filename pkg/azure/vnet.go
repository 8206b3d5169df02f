package azhelpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2018-12-01/network"
	"github.com/Azure/go-autorest/autorest/to"
)

func (c *CloudConfiguration) GetVNETClient() (network.VirtualNetworksClient, error) {
	vnetClient := network.NewVirtualNetworksClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return vnetClient, err
	}
	vnetClient.Authorizer = a
	vnetClient.AddToUserAgent(c.UserAgent)
	return vnetClient, nil
}

// FindVirtualNetwork returns the named virtual network in the configured
// resource group, or nil when it does not exist.
func (c *CloudConfiguration) FindVirtualNetwork(ctx context.Context, vnetName string) (*network.VirtualNetwork, error) {
	vnetClient, err := c.GetVNETClient()
	if err != nil {
		return nil, err
	}

	page, err := vnetClient.List(ctx, c.GroupName)
	if err != nil {
		return nil, err
	}
	for page.NotDone() {
		for _, vnet := range page.Values() {
			if vnet.Name != nil && *vnet.Name == vnetName {
				return &vnet, nil
			}
		}
		if err := page.NextWithContext(ctx); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// CreateVirtualNetwork creates a virtual network with a single address
// space and waits for completion. Existing virtual networks must not be
// recreated through this path, an update would drop subnets already
// attached to them.
func (c *CloudConfiguration) CreateVirtualNetwork(ctx context.Context, vnetName, addressPrefix string) error {
	vnetClient, err := c.GetVNETClient()
	if err != nil {
		return err
	}

	future, err := vnetClient.CreateOrUpdate(
		ctx,
		c.GroupName,
		vnetName,
		network.VirtualNetwork{
			Location: to.StringPtr(c.GroupLocation),
			VirtualNetworkPropertiesFormat: &network.VirtualNetworkPropertiesFormat{
				AddressSpace: &network.AddressSpace{
					AddressPrefixes: &[]string{addressPrefix},
				},
			},
		})

	if err != nil {
		return fmt.Errorf("cannot create virtual network: %v", err)
	}

	err = future.WaitForCompletionRef(ctx, vnetClient.Client)
	if err != nil {
		return fmt.Errorf("cannot get the vnet create or update future response: %v", err)
	}

	_, err = future.Result(vnetClient)

	return err
}
