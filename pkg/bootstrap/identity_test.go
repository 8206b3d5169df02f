package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/Azure/go-autorest/autorest/azure"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
)

func principalNotFoundError() error {
	return &azure.RequestError{
		ServiceError: &azure.ServiceError{
			Code:    "PrincipalNotFound",
			Message: "Principal abc does not exist in the directory",
		},
	}
}

type fakeIdentityAPI struct {
	identity azhelpers.UserAssignedIdentity

	ensureIdentityCalls int
	roleCalls           int
	roleFailures        int
	roleErr             error
	roleScope           string
	rolePrincipalID     string
	roleName            string
}

func (f *fakeIdentityAPI) GetResourceGroupID(ctx context.Context) (string, error) {
	return "/subscriptions/sub-1234/resourceGroups/scale-test", nil
}

func (f *fakeIdentityAPI) EnsureUserAssignedIdentity(ctx context.Context, name string) (azhelpers.UserAssignedIdentity, error) {
	f.ensureIdentityCalls++
	return f.identity, nil
}

func (f *fakeIdentityAPI) EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) error {
	f.roleCalls++
	f.roleScope = scope
	f.roleName = roleName
	f.rolePrincipalID = principalID
	if f.roleCalls <= f.roleFailures {
		return f.roleErr
	}
	return nil
}

func TestConfigureManagedIdentity(t *testing.T) {
	cfg := &config.Config{}
	client := &fakeIdentityAPI{
		identity: azhelpers.UserAssignedIdentity{
			ID:          "/subscriptions/sub-1234/resourceGroups/scale-test/providers/Microsoft.ManagedIdentity/userAssignedIdentities/azlift-identity",
			Name:        "azlift-identity",
			PrincipalID: "principal-1",
			ClientID:    "client-1",
		},
	}

	err := configureManagedIdentity(context.Background(), client, cfg, 3, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 1, client.ensureIdentityCalls)
	require.Equal(t, 1, client.roleCalls)
	require.Equal(t, "Contributor", client.roleName)
	require.Equal(t, "/subscriptions/sub-1234/resourceGroups/scale-test", client.roleScope)
	require.Equal(t, "principal-1", client.rolePrincipalID)
	require.Equal(t, client.identity.ID, cfg.Provider.MSIIdentityID)
	require.Equal(t, "principal-1", cfg.Provider.MSIIdentityPrincipalID)
}

func TestAssignContributorRoleRetriesPropagation(t *testing.T) {
	client := &fakeIdentityAPI{
		roleFailures: 2,
		roleErr:      principalNotFoundError(),
	}

	err := assignContributorRole(context.Background(), client, "scope", "principal-1", 5, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 3, client.roleCalls)
}

func TestAssignContributorRoleSurfacesExhaustion(t *testing.T) {
	client := &fakeIdentityAPI{
		roleFailures: 100,
		roleErr:      principalNotFoundError(),
	}

	err := assignContributorRole(context.Background(), client, "scope", "principal-1", 3, time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create contributor role assignment")
	require.Equal(t, 3, client.roleCalls)
}

func TestAssignContributorRoleStopsOnOtherErrors(t *testing.T) {
	client := &fakeIdentityAPI{
		roleFailures: 100,
		roleErr:      errors.New("RoleAssignmentUpdateNotPermitted"),
	}

	err := assignContributorRole(context.Background(), client, "scope", "principal-1", 5, time.Millisecond)
	require.Error(t, err)
	require.Equal(t, 1, client.roleCalls)
}
