package azhelpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/msi/mgmt/2018-11-30/msi"
	"github.com/Azure/go-autorest/autorest/to"
)

// UserAssignedIdentity is the flattened subset of a managed identity the
// bootstrap pipeline cares about.
type UserAssignedIdentity struct {
	ID          string
	Name        string
	PrincipalID string
	ClientID    string
}

func (c *CloudConfiguration) GetMSIClient() (msi.UserAssignedIdentitiesClient, error) {
	msiClient := msi.NewUserAssignedIdentitiesClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return msiClient, err
	}
	msiClient.Authorizer = a
	msiClient.AddToUserAgent(c.UserAgent)
	return msiClient, nil
}

// ListUserAssignedIdentities returns all user assigned identities in the
// configured resource group.
func (c *CloudConfiguration) ListUserAssignedIdentities(ctx context.Context) ([]UserAssignedIdentity, error) {
	msiClient, err := c.GetMSIClient()
	if err != nil {
		return nil, err
	}

	var identities []UserAssignedIdentity
	page, err := msiClient.ListByResourceGroup(ctx, c.GroupName)
	if err != nil {
		return nil, fmt.Errorf("cannot list identities in %s: %v", c.GroupName, err)
	}
	for page.NotDone() {
		for _, identity := range page.Values() {
			identities = append(identities, flattenIdentity(identity))
		}
		if err := page.NextWithContext(ctx); err != nil {
			return nil, fmt.Errorf("cannot list identities in %s: %v", c.GroupName, err)
		}
	}
	return identities, nil
}

// CreateOrUpdateUserAssignedIdentity creates a user assigned identity in the
// configured resource group.
func (c *CloudConfiguration) CreateOrUpdateUserAssignedIdentity(ctx context.Context, name string) (UserAssignedIdentity, error) {
	msiClient, err := c.GetMSIClient()
	if err != nil {
		return UserAssignedIdentity{}, err
	}

	identity, err := msiClient.CreateOrUpdate(ctx, c.GroupName, name,
		msi.Identity{Location: to.StringPtr(c.GroupLocation)})
	if err != nil {
		return UserAssignedIdentity{}, fmt.Errorf("cannot create identity %s: %v", name, err)
	}
	return flattenIdentity(identity), nil
}

// EnsureUserAssignedIdentity reuses the first identity already present in
// the resource group, creating one with the given name otherwise.
func (c *CloudConfiguration) EnsureUserAssignedIdentity(ctx context.Context, name string) (UserAssignedIdentity, error) {
	identities, err := c.ListUserAssignedIdentities(ctx)
	if err != nil {
		return UserAssignedIdentity{}, err
	}
	if len(identities) > 0 {
		return identities[0], nil
	}
	return c.CreateOrUpdateUserAssignedIdentity(ctx, name)
}

func flattenIdentity(identity msi.Identity) UserAssignedIdentity {
	out := UserAssignedIdentity{}
	if identity.ID != nil {
		out.ID = *identity.ID
	}
	if identity.Name != nil {
		out.Name = *identity.Name
	}
	if identity.IdentityProperties != nil {
		if identity.PrincipalID != nil {
			out.PrincipalID = identity.PrincipalID.String()
		}
		if identity.ClientID != nil {
			out.ClientID = identity.ClientID.String()
		}
	}
	return out
}
