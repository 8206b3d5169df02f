package azhelpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/containerinstance/mgmt/2018-10-01/containerinstance"
	"github.com/Azure/go-autorest/autorest/to"
)

// ContainerGroupSpec describes the single container group created by the
// ACI provider.
type ContainerGroupSpec struct {
	Name         string
	Image        string
	Port         int32
	CPU          float64
	MemoryGB     float64
	GPUCount     int32
	GPUSKU       string
	DNSNameLabel string
	IdentityID   string
}

func (c *CloudConfiguration) GetContainerGroupsClient() (containerinstance.ContainerGroupsClient, error) {
	groupsClient := containerinstance.NewContainerGroupsClient(c.SubscriptionID)
	a, err := c.getResourceManagementAuthorizer()
	if err != nil {
		return groupsClient, err
	}
	groupsClient.Authorizer = a
	groupsClient.AddToUserAgent(c.UserAgent)
	return groupsClient, nil
}

// CreateOrUpdateContainerGroup upserts a linux container group with one
// container, a public IP with DNS label and a user assigned identity
// binding, waiting for completion.
func (c *CloudConfiguration) CreateOrUpdateContainerGroup(ctx context.Context, spec ContainerGroupSpec) (containerinstance.ContainerGroup, error) {
	groupsClient, err := c.GetContainerGroupsClient()
	if err != nil {
		return containerinstance.ContainerGroup{}, err
	}

	requests := &containerinstance.ResourceRequests{
		CPU:        to.Float64Ptr(spec.CPU),
		MemoryInGB: to.Float64Ptr(spec.MemoryGB),
	}
	if spec.GPUCount > 0 {
		requests.Gpu = &containerinstance.GpuResource{
			Count: to.Int32Ptr(spec.GPUCount),
			Sku:   containerinstance.GpuSku(spec.GPUSKU),
		}
	}

	group := containerinstance.ContainerGroup{
		Location: to.StringPtr(c.GroupLocation),
		ContainerGroupProperties: &containerinstance.ContainerGroupProperties{
			OsType: containerinstance.Linux,
			Containers: &[]containerinstance.Container{
				{
					Name: to.StringPtr(spec.Name),
					ContainerProperties: &containerinstance.ContainerProperties{
						Image: to.StringPtr(spec.Image),
						Ports: &[]containerinstance.ContainerPort{
							{Port: to.Int32Ptr(spec.Port)},
						},
						Resources: &containerinstance.ResourceRequirements{
							Requests: requests,
						},
					},
				},
			},
			IPAddress: &containerinstance.IPAddress{
				Type:         containerinstance.Public,
				DNSNameLabel: to.StringPtr(spec.DNSNameLabel),
				Ports: &[]containerinstance.Port{
					{
						Protocol: containerinstance.TCP,
						Port:     to.Int32Ptr(spec.Port),
					},
				},
			},
		},
	}

	if spec.IdentityID != "" {
		group.Identity = &containerinstance.ContainerGroupIdentity{
			Type: containerinstance.UserAssigned,
			UserAssignedIdentities: map[string]*containerinstance.ContainerGroupIdentityUserAssignedIdentitiesValue{
				spec.IdentityID: {},
			},
		}
	}

	future, err := groupsClient.CreateOrUpdate(ctx, c.GroupName, spec.Name, group)
	if err != nil {
		return containerinstance.ContainerGroup{}, fmt.Errorf("cannot create container group: %v", err)
	}

	err = future.WaitForCompletionRef(ctx, groupsClient.Client)
	if err != nil {
		return containerinstance.ContainerGroup{}, fmt.Errorf("cannot get container group create or update future response: %v", err)
	}

	return future.Result(groupsClient)
}

// GetContainerGroup fetches an existing container group.
func (c *CloudConfiguration) GetContainerGroup(ctx context.Context, name string) (containerinstance.ContainerGroup, error) {
	groupsClient, err := c.GetContainerGroupsClient()
	if err != nil {
		return containerinstance.ContainerGroup{}, err
	}
	return groupsClient.Get(ctx, c.GroupName, name)
}
