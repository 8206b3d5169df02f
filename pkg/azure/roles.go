package azhelpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/preview/authorization/mgmt/2018-01-01-preview/authorization"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/google/uuid"
)

func (c *CloudConfiguration) GetRoleDefinitionsClient() (authorization.RoleDefinitionsClient, error) {
	definitionsClient := authorization.NewRoleDefinitionsClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return definitionsClient, err
	}
	definitionsClient.Authorizer = a
	definitionsClient.AddToUserAgent(c.UserAgent)
	return definitionsClient, nil
}

func (c *CloudConfiguration) GetRoleAssignmentsClient() (authorization.RoleAssignmentsClient, error) {
	assignmentsClient := authorization.NewRoleAssignmentsClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return assignmentsClient, err
	}
	assignmentsClient.Authorizer = a
	assignmentsClient.AddToUserAgent(c.UserAgent)
	return assignmentsClient, nil
}

// findRoleDefinition resolves a role definition by display name at the
// given scope.
func (c *CloudConfiguration) findRoleDefinition(ctx context.Context, scope, roleName string) (authorization.RoleDefinition, error) {
	definitionsClient, err := c.GetRoleDefinitionsClient()
	if err != nil {
		return authorization.RoleDefinition{}, err
	}

	page, err := definitionsClient.List(ctx, scope, fmt.Sprintf("roleName eq '%s'", roleName))
	if err != nil {
		return authorization.RoleDefinition{}, fmt.Errorf("cannot list role definitions: %v", err)
	}
	if len(page.Values()) == 0 {
		return authorization.RoleDefinition{}, fmt.Errorf("role definition %s not found at scope %s", roleName, scope)
	}
	return page.Values()[0], nil
}

// EnsureRoleAssignment assigns the named role to the principal at the given
// scope, skipping creation when an assignment for that role already exists.
func (c *CloudConfiguration) EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) error {
	role, err := c.findRoleDefinition(ctx, scope, roleName)
	if err != nil {
		return err
	}

	assignmentsClient, err := c.GetRoleAssignmentsClient()
	if err != nil {
		return err
	}

	page, err := assignmentsClient.ListForScope(ctx, scope, fmt.Sprintf("principalId eq '%s'", principalID))
	if err != nil {
		return fmt.Errorf("cannot list role assignments: %v", err)
	}
	for page.NotDone() {
		for _, assignment := range page.Values() {
			if assignment.RoleAssignmentPropertiesWithScope != nil &&
				assignment.RoleDefinitionID != nil &&
				role.ID != nil &&
				*assignment.RoleDefinitionID == *role.ID {
				return nil
			}
		}
		if err := page.NextWithContext(ctx); err != nil {
			return fmt.Errorf("cannot list role assignments: %v", err)
		}
	}

	_, err = assignmentsClient.Create(ctx, scope, uuid.New().String(),
		authorization.RoleAssignmentCreateParameters{
			RoleAssignmentProperties: &authorization.RoleAssignmentProperties{
				RoleDefinitionID: role.ID,
				PrincipalID:      to.StringPtr(principalID),
			},
		})
	return err
}
