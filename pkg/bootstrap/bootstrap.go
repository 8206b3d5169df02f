package bootstrap

import (
	"context"

	"github.com/pkg/errors"

	"github.com/azlift/azlift/pkg/config"
	logf "github.com/azlift/azlift/pkg/log"
)

var log = logf.Log.WithName("bootstrap")

// Bootstrap is the single entry point: it fills the missing provider fields
// of cfg by querying or creating Azure resources and returns the augmented
// configuration, ready for the node launcher.
func Bootstrap(ctx context.Context, cfg *config.Config) (*config.Config, error) {
	spec, err := CreateSpec(cfg)
	if err != nil {
		return nil, err
	}
	return spec.Bootstrap(ctx)
}

// Bootstrap runs the configuration stages in dependency order. Stages block
// on the Azure API; there is no parallelism, each stage reads what the
// previous ones wrote into the configuration.
func (spec *Spec) Bootstrap(ctx context.Context) (*config.Config, error) {
	if err := spec.ConfigureResourceGroup(ctx); err != nil {
		return nil, errors.Wrap(err, "configuring resource group")
	}

	if err := spec.ConfigureIdentity(ctx); err != nil {
		return nil, errors.Wrap(err, "configuring identity")
	}

	if err := spec.ConfigureKeyPair(); err != nil {
		return nil, errors.Wrap(err, "configuring key pair")
	}

	switch spec.Config.Provider.Type {
	case config.ProviderACI:
		if err := spec.ConfigureContainerGroup(ctx); err != nil {
			return nil, errors.Wrap(err, "configuring container group")
		}
	default:
		if err := spec.ConfigureNetwork(ctx); err != nil {
			return nil, errors.Wrap(err, "configuring network")
		}
	}

	spec.ConfigureNodes()

	return spec.Config, nil
}

// ConfigureIdentity picks the identity variant: a named service principal
// when the provider configures one, a user assigned managed identity
// otherwise.
func (spec *Spec) ConfigureIdentity(ctx context.Context) error {
	if spec.Config.Provider.ServicePrincipal != "" {
		return spec.ConfigureServicePrincipal(ctx)
	}
	return spec.ConfigureManagedIdentity(ctx)
}
