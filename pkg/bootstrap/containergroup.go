package bootstrap

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/containerinstance/mgmt/2018-10-01/containerinstance"
	"github.com/pkg/errors"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
)

// Fixed resource request for the bootstrap container group.
const (
	containerGroupCPU      = 1.0
	containerGroupMemoryGB = 2.0
	containerGroupGPUCount = 1
	containerGroupGPUSKU   = "K80"
)

type containerGroupAPI interface {
	CreateOrUpdateContainerGroup(ctx context.Context, spec azhelpers.ContainerGroupSpec) (containerinstance.ContainerGroup, error)
	GetContainerGroup(ctx context.Context, name string) (containerinstance.ContainerGroup, error)
}

// ConfigureContainerGroup upserts the ACI container group named by the
// docker configuration, bound to the user assigned identity, with a public
// IP whose DNS label matches the group name.
func (spec *Spec) ConfigureContainerGroup(ctx context.Context) error {
	log.Info("Creating", "ContainerGroup", spec.Config.Docker.ContainerName)
	if err := configureContainerGroup(ctx, &spec.CloudConfiguration, spec.Config); err != nil {
		return err
	}
	log.Info("Successfully Created", "ContainerGroup", spec.Config.Docker.ContainerName)
	return nil
}

func configureContainerGroup(ctx context.Context, client containerGroupAPI, cfg *config.Config) error {
	if cfg.Docker.ContainerName == "" || cfg.Docker.Image == "" {
		return errors.New("aci provider requires docker image and container_name")
	}

	name := cfg.Docker.ContainerName
	_, err := client.CreateOrUpdateContainerGroup(ctx, azhelpers.ContainerGroupSpec{
		Name:         name,
		Image:        cfg.Docker.Image,
		Port:         sshPort,
		CPU:          containerGroupCPU,
		MemoryGB:     containerGroupMemoryGB,
		GPUCount:     containerGroupGPUCount,
		GPUSKU:       containerGroupGPUSKU,
		DNSNameLabel: name,
		IdentityID:   cfg.Provider.MSIIdentityID,
	})
	if err != nil {
		return err
	}

	// fetch it back to confirm the group landed
	if _, err := client.GetContainerGroup(ctx, name); err != nil {
		return err
	}
	return nil
}
