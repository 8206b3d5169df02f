package azhelpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2018-12-01/network"
	"github.com/Azure/go-autorest/autorest/to"
)

func (c *CloudConfiguration) GetSubnetsClient() (network.SubnetsClient, error) {
	subnetsClient := network.NewSubnetsClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return subnetsClient, err
	}
	subnetsClient.Authorizer = a
	subnetsClient.AddToUserAgent(c.UserAgent)
	return subnetsClient, nil
}

// GetSubnet returns an existing subnet from a virtual network
func (c *CloudConfiguration) GetSubnet(ctx context.Context, vnetName, subnetName string) (network.Subnet, error) {
	subnetsClient, err := c.GetSubnetsClient()
	if err != nil {
		return network.Subnet{}, err
	}
	return subnetsClient.Get(ctx, c.GroupName, vnetName, subnetName, "")
}

// CreateOrUpdateSubnet upserts a subnet with the given address prefix and
// waits for completion.
func (c *CloudConfiguration) CreateOrUpdateSubnet(ctx context.Context, vnetName, subnetName, addressPrefix string) (network.Subnet, error) {
	subnetsClient, err := c.GetSubnetsClient()
	if err != nil {
		return network.Subnet{}, err
	}

	future, err := subnetsClient.CreateOrUpdate(
		ctx,
		c.GroupName,
		vnetName,
		subnetName,
		network.Subnet{
			SubnetPropertiesFormat: &network.SubnetPropertiesFormat{
				AddressPrefix: to.StringPtr(addressPrefix),
			},
		})

	if err != nil {
		return network.Subnet{}, fmt.Errorf("cannot create subnet: %v", err)
	}

	err = future.WaitForCompletionRef(ctx, subnetsClient.Client)
	if err != nil {
		return network.Subnet{}, fmt.Errorf("cannot get subnet create or update future response: %v", err)
	}

	return future.Result(subnetsClient)
}
