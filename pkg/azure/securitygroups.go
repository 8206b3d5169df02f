package azhelpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2018-12-01/network"
	"github.com/Azure/go-autorest/autorest/to"
)

func (c *CloudConfiguration) GetNSGClient() (network.SecurityGroupsClient, error) {
	nsgClient := network.NewSecurityGroupsClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return nsgClient, err
	}
	nsgClient.Authorizer = a
	nsgClient.AddToUserAgent(c.UserAgent)
	return nsgClient, nil
}

// CreateNetworkSecurityGroup upserts a network security group with a single
// inbound allow rule for the given TCP port.
func (c *CloudConfiguration) CreateNetworkSecurityGroup(ctx context.Context, nsgName string, port int32) (network.SecurityGroup, error) {
	nsgClient, err := c.GetNSGClient()
	if err != nil {
		return network.SecurityGroup{}, err
	}

	future, err := nsgClient.CreateOrUpdate(
		ctx,
		c.GroupName,
		nsgName,
		network.SecurityGroup{
			Location: to.StringPtr(c.GroupLocation),
			SecurityGroupPropertiesFormat: &network.SecurityGroupPropertiesFormat{
				SecurityRules: &[]network.SecurityRule{
					{
						Name: to.StringPtr(fmt.Sprintf("allow_%d", port)),
						SecurityRulePropertiesFormat: &network.SecurityRulePropertiesFormat{
							Protocol:                 network.SecurityRuleProtocolTCP,
							SourceAddressPrefix:      to.StringPtr("*"),
							SourcePortRange:          to.StringPtr("*"),
							DestinationAddressPrefix: to.StringPtr("*"),
							DestinationPortRange:     to.StringPtr(fmt.Sprintf("%d", port)),
							Access:                   network.SecurityRuleAccessAllow,
							Direction:                network.SecurityRuleDirectionInbound,
							Priority:                 to.Int32Ptr(300),
						},
					},
				},
			},
		},
	)

	if err != nil {
		return network.SecurityGroup{}, fmt.Errorf("cannot create nsg: %v", err)
	}

	err = future.WaitForCompletionRef(ctx, nsgClient.Client)
	if err != nil {
		return network.SecurityGroup{}, fmt.Errorf("cannot get nsg create or update future response: %v", err)
	}

	return future.Result(nsgClient)
}
