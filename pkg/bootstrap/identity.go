package bootstrap

import (
	"context"
	"time"

	"github.com/pkg/errors"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
	"github.com/azlift/azlift/pkg/helpers"
)

type identityAPI interface {
	GetResourceGroupID(ctx context.Context) (string, error)
	EnsureUserAssignedIdentity(ctx context.Context, name string) (azhelpers.UserAssignedIdentity, error)
	EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) error
}

// ConfigureManagedIdentity ensures a user assigned identity exists in the
// resource group and holds the Contributor role on it. The role assignment
// is retried while the authorization service catches up with the freshly
// created principal.
func (spec *Spec) ConfigureManagedIdentity(ctx context.Context) error {
	log.Info("Creating user assigned identity", "ResourceGroup", spec.GroupName)
	if err := configureManagedIdentity(ctx, &spec.CloudConfiguration, spec.Config, spec.retries, spec.roleAssignmentDelay); err != nil {
		return err
	}
	log.Info("Successfully Created user assigned identity", "ID", spec.Config.Provider.MSIIdentityID)
	return nil
}

func configureManagedIdentity(ctx context.Context, client identityAPI, cfg *config.Config, retries int, delay time.Duration) error {
	scope, err := client.GetResourceGroupID(ctx)
	if err != nil {
		return err
	}

	identity, err := client.EnsureUserAssignedIdentity(ctx, defaultIdentityName)
	if err != nil {
		return err
	}

	cfg.Provider.MSIIdentityID = identity.ID
	cfg.Provider.MSIIdentityPrincipalID = identity.PrincipalID

	return assignContributorRole(ctx, client, scope, identity.PrincipalID, retries, delay)
}

type roleAssigner interface {
	EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) error
}

// assignContributorRole grants Contributor at the given scope, retrying on
// PrincipalNotFound: the authorization service lags behind identity
// creation, the principal becomes visible eventually.
func assignContributorRole(ctx context.Context, client roleAssigner, scope, principalID string, retries int, delay time.Duration) error {
	err := helpers.Retry(ctx, retries, delay, azhelpers.IsPrincipalNotFound, func() error {
		return client.EnsureRoleAssignment(ctx, scope, contributorRoleName, principalID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to create contributor role assignment")
	}
	return nil
}
