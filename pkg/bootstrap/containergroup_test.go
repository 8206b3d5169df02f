package bootstrap

import (
	"context"
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/containerinstance/mgmt/2018-10-01/containerinstance"
	"github.com/stretchr/testify/require"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
)

type fakeContainerGroupAPI struct {
	spec        azhelpers.ContainerGroupSpec
	createCalls int
	getCalls    int
	getName     string
}

func (f *fakeContainerGroupAPI) CreateOrUpdateContainerGroup(ctx context.Context, spec azhelpers.ContainerGroupSpec) (containerinstance.ContainerGroup, error) {
	f.createCalls++
	f.spec = spec
	return containerinstance.ContainerGroup{}, nil
}

func (f *fakeContainerGroupAPI) GetContainerGroup(ctx context.Context, name string) (containerinstance.ContainerGroup, error) {
	f.getCalls++
	f.getName = name
	return containerinstance.ContainerGroup{}, nil
}

func TestConfigureContainerGroup(t *testing.T) {
	cfg := &config.Config{
		Provider: config.ProviderConfig{
			Type:          config.ProviderACI,
			Location:      "eastus",
			ResourceGroup: "aci-test",
			MSIIdentityID: "/subscriptions/sub-1234/resourceGroups/aci-test/providers/Microsoft.ManagedIdentity/userAssignedIdentities/azlift-identity",
		},
		Docker: config.DockerConfig{
			Image:         "rayproject/ray:latest",
			ContainerName: "scale-head",
		},
	}
	client := &fakeContainerGroupAPI{}

	err := configureContainerGroup(context.Background(), client, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, client.createCalls)
	require.Equal(t, 1, client.getCalls)
	require.Equal(t, "scale-head", client.getName)

	spec := client.spec
	require.Equal(t, "scale-head", spec.Name)
	require.Equal(t, "rayproject/ray:latest", spec.Image)
	require.Equal(t, int32(22), spec.Port)
	require.Equal(t, 1.0, spec.CPU)
	require.Equal(t, 2.0, spec.MemoryGB)
	require.Equal(t, int32(1), spec.GPUCount)
	require.Equal(t, "K80", spec.GPUSKU)
	require.Equal(t, "scale-head", spec.DNSNameLabel)
	require.Equal(t, cfg.Provider.MSIIdentityID, spec.IdentityID)
}

func TestConfigureContainerGroupRequiresDockerSettings(t *testing.T) {
	client := &fakeContainerGroupAPI{}

	err := configureContainerGroup(context.Background(), client, &config.Config{
		Docker: config.DockerConfig{Image: "rayproject/ray:latest"},
	})
	require.Error(t, err)

	err = configureContainerGroup(context.Background(), client, &config.Config{
		Docker: config.DockerConfig{ContainerName: "scale-head"},
	})
	require.Error(t, err)
	require.Equal(t, 0, client.createCalls)
}
