// Package config defines the cluster configuration consumed and augmented by
// the bootstrap pipeline. The provider, auth and node template sections are
// filled in by the pipeline stages; the node launcher reads the result.
package config

// Provider type values.
const (
	ProviderAzure = "azure"
	ProviderACI   = "aci"
)

type Config struct {
	Provider    ProviderConfig `yaml:"provider" json:"provider"`
	Auth        AuthConfig     `yaml:"auth" json:"auth"`
	HeadNode    *NodeConfig    `yaml:"head_node,omitempty" json:"headNode,omitempty"`
	WorkerNodes *NodeConfig    `yaml:"worker_nodes,omitempty" json:"workerNodes,omitempty"`
	Docker      DockerConfig   `yaml:"docker,omitempty" json:"docker,omitempty"`
}

// ProviderConfig carries the Azure specific settings. Location and
// ResourceGroup are caller supplied; the remaining fields are resolved by
// the pipeline when empty.
type ProviderConfig struct {
	Type             string            `yaml:"type,omitempty" json:"type,omitempty"`
	Location         string            `yaml:"location" json:"location"`
	ResourceGroup    string            `yaml:"resource_group" json:"resourceGroup"`
	SubscriptionID   string            `yaml:"subscription_id,omitempty" json:"subscriptionID,omitempty"`
	TenantID         string            `yaml:"tenant_id,omitempty" json:"tenantID,omitempty"`
	ServicePrincipal string            `yaml:"service_principal,omitempty" json:"servicePrincipal,omitempty"`
	Tags             map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`

	SubnetID               string `yaml:"subnet_id,omitempty" json:"subnetID,omitempty"`
	MSIIdentityID          string `yaml:"msi_identity_id,omitempty" json:"msiIdentityID,omitempty"`
	MSIIdentityPrincipalID string `yaml:"msi_identity_principal_id,omitempty" json:"msiIdentityPrincipalID,omitempty"`
	AuthPath               string `yaml:"auth_path,omitempty" json:"authPath,omitempty"`
}

// AuthConfig carries SSH access settings. SSHPrivateKey left empty means the
// key pair stage generates or reuses a deterministic local pair.
type AuthConfig struct {
	SSHUser       string `yaml:"ssh_user" json:"sshUser"`
	SSHPrivateKey string `yaml:"ssh_private_key,omitempty" json:"sshPrivateKey,omitempty"`
	SSHPublicKey  string `yaml:"ssh_public_key,omitempty" json:"sshPublicKey,omitempty"`
}

// DockerConfig names the container image and container group used by the
// ACI provider.
type DockerConfig struct {
	Image         string `yaml:"image,omitempty" json:"image,omitempty"`
	ContainerName string `yaml:"container_name,omitempty" json:"containerName,omitempty"`
}

// NodeConfig is a per role VM template. Unset sections are filled from the
// role defaults by the node defaults stage.
type NodeConfig struct {
	HardwareProfile *HardwareProfile `yaml:"hardware_profile,omitempty" json:"hardwareProfile,omitempty"`
	StorageProfile  *StorageProfile  `yaml:"storage_profile,omitempty" json:"storageProfile,omitempty"`
	OSProfile       *OSProfile       `yaml:"os_profile,omitempty" json:"osProfile,omitempty"`
	NetworkProfile  *NetworkProfile  `yaml:"network_profile,omitempty" json:"networkProfile,omitempty"`
	Priority        string           `yaml:"priority,omitempty" json:"priority,omitempty"`
	EvictionPolicy  string           `yaml:"eviction_policy,omitempty" json:"evictionPolicy,omitempty"`
}

type HardwareProfile struct {
	VMSize string `yaml:"vm_size" json:"vmSize"`
}

type StorageProfile struct {
	OSDisk         OSDisk         `yaml:"os_disk" json:"osDisk"`
	ImageReference ImageReference `yaml:"image_reference" json:"imageReference"`
}

type OSDisk struct {
	CreateOption string `yaml:"create_option" json:"createOption"`
	Caching      string `yaml:"caching,omitempty" json:"caching,omitempty"`
}

type ImageReference struct {
	Publisher string `yaml:"publisher" json:"publisher"`
	Offer     string `yaml:"offer" json:"offer"`
	SKU       string `yaml:"sku" json:"sku"`
	Version   string `yaml:"version" json:"version"`
}

type OSProfile struct {
	AdminUsername      string              `yaml:"admin_username" json:"adminUsername"`
	ComputerName       string              `yaml:"computer_name,omitempty" json:"computerName,omitempty"`
	LinuxConfiguration *LinuxConfiguration `yaml:"linux_configuration,omitempty" json:"linuxConfiguration,omitempty"`
}

type LinuxConfiguration struct {
	DisablePasswordAuthentication bool             `yaml:"disable_password_authentication" json:"disablePasswordAuthentication"`
	SSH                           SSHConfiguration `yaml:"ssh,omitempty" json:"ssh,omitempty"`
}

type SSHConfiguration struct {
	PublicKeys []SSHPublicKey `yaml:"public_keys,omitempty" json:"publicKeys,omitempty"`
}

type SSHPublicKey struct {
	KeyData string `yaml:"key_data" json:"keyData"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

type NetworkProfile struct {
	NetworkInterfaces []NetworkInterfaceReference `yaml:"network_interfaces,omitempty" json:"networkInterfaces,omitempty"`
}

type NetworkInterfaceReference struct {
	ID      string `yaml:"id" json:"id"`
	Primary bool   `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// HasNetworkInterfaces reports whether the template pins its own network
// interfaces, which lets the network stage skip vnet setup.
func (n *NodeConfig) HasNetworkInterfaces() bool {
	return n != nil && n.NetworkProfile != nil && len(n.NetworkProfile.NetworkInterfaces) > 0
}

// HasSSHPublicKeys reports whether the template already carries SSH public
// key material.
func (n *NodeConfig) HasSSHPublicKeys() bool {
	return n != nil && n.OSProfile != nil && n.OSProfile.LinuxConfiguration != nil &&
		len(n.OSProfile.LinuxConfiguration.SSH.PublicKeys) > 0
}
