package azhelpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2018-05-01/resources"
	"github.com/Azure/go-autorest/autorest/to"
)

func (c *CloudConfiguration) GetGroupsClient() (resources.GroupsClient, error) {
	groupsClient := resources.NewGroupsClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return groupsClient, err
	}
	groupsClient.Authorizer = a
	groupsClient.AddToUserAgent(c.UserAgent)
	return groupsClient, nil
}

// CreateOrUpdateResourceGroup upserts the configured resource group,
// applying tags when supplied.
func (c *CloudConfiguration) CreateOrUpdateResourceGroup(ctx context.Context, tags map[string]string) error {
	groupsClient, err := c.GetGroupsClient()
	if err != nil {
		return err
	}

	group := resources.Group{Location: to.StringPtr(c.GroupLocation)}
	if len(tags) > 0 {
		group.Tags = make(map[string]*string, len(tags))
		for k, v := range tags {
			group.Tags[k] = to.StringPtr(v)
		}
	}

	_, err = groupsClient.CreateOrUpdate(ctx, c.GroupName, group)
	return err
}

// GetResourceGroupID returns the fully qualified resource id of the
// configured group, used as the role assignment scope.
func (c *CloudConfiguration) GetResourceGroupID(ctx context.Context) (string, error) {
	groupsClient, err := c.GetGroupsClient()
	if err != nil {
		return "", err
	}

	group, err := groupsClient.Get(ctx, c.GroupName)
	if err != nil {
		return "", fmt.Errorf("cannot get resource group %s: %v", c.GroupName, err)
	}
	if group.ID == nil {
		return "", fmt.Errorf("resource group %s has no id", c.GroupName)
	}
	return *group.ID, nil
}
