package bootstrap

import (
	"context"

	"github.com/azlift/azlift/pkg/config"
)

type resourceGroupsAPI interface {
	CreateOrUpdateResourceGroup(ctx context.Context, tags map[string]string) error
}

// ConfigureResourceGroup upserts the resource group and writes the resolved
// subscription and tenant ids back into the configuration.
func (spec *Spec) ConfigureResourceGroup(ctx context.Context) error {
	log.Info("Using subscription", "SubscriptionID", spec.SubscriptionID)
	log.Info("Creating", "ResourceGroup", spec.GroupName, "Location", spec.GroupLocation)
	if err := configureResourceGroup(ctx, &spec.CloudConfiguration, spec.Config, spec.SubscriptionID, spec.TenantID); err != nil {
		return err
	}
	log.Info("Successfully Created", "ResourceGroup", spec.GroupName, "Location", spec.GroupLocation)
	return nil
}

func configureResourceGroup(ctx context.Context, client resourceGroupsAPI, cfg *config.Config, subscriptionID, tenantID string) error {
	cfg.Provider.SubscriptionID = subscriptionID
	if tenantID != "" {
		cfg.Provider.TenantID = tenantID
	}
	return client.CreateOrUpdateResourceGroup(ctx, cfg.Provider.Tags)
}
