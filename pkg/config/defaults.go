package config

// Default template values applied by the node defaults stage.
const (
	DefaultVMSize        = "Standard_D2s_v3"
	DefaultAdminUsername = "ubuntu"

	SpotPriority             = "Spot"
	DeallocateEvictionPolicy = "Deallocate"
)

func defaultNodeConfig() *NodeConfig {
	return &NodeConfig{
		HardwareProfile: &HardwareProfile{
			VMSize: DefaultVMSize,
		},
		StorageProfile: &StorageProfile{
			OSDisk: OSDisk{
				CreateOption: "FromImage",
				Caching:      "ReadWrite",
			},
			ImageReference: ImageReference{
				Publisher: "microsoft-dsvm",
				Offer:     "linux-data-science-vm-ubuntu",
				SKU:       "linuxdsvmubuntu",
				Version:   "latest",
			},
		},
		OSProfile: &OSProfile{
			AdminUsername: DefaultAdminUsername,
			LinuxConfiguration: &LinuxConfiguration{
				DisablePasswordAuthentication: true,
			},
		},
	}
}

// DefaultHeadNodeConfig returns the default head node template.
func DefaultHeadNodeConfig() *NodeConfig {
	return defaultNodeConfig()
}

// DefaultWorkerNodeConfig returns the default worker template. Workers run
// on spot capacity unless the caller overrides the priority.
func DefaultWorkerNodeConfig() *NodeConfig {
	node := defaultNodeConfig()
	node.Priority = SpotPriority
	node.EvictionPolicy = DeallocateEvictionPolicy
	return node
}

// ApplyNodeDefaults merges defaults into node, section by section: sections
// the caller supplied are kept verbatim, unset ones come from defaults. A
// nil node yields the defaults unchanged.
func ApplyNodeDefaults(node, defaults *NodeConfig) *NodeConfig {
	if node == nil {
		return defaults
	}
	merged := *node
	if merged.HardwareProfile == nil {
		merged.HardwareProfile = defaults.HardwareProfile
	}
	if merged.StorageProfile == nil {
		merged.StorageProfile = defaults.StorageProfile
	}
	if merged.OSProfile == nil {
		merged.OSProfile = defaults.OSProfile
	}
	if merged.NetworkProfile == nil {
		merged.NetworkProfile = defaults.NetworkProfile
	}
	if merged.Priority == "" {
		merged.Priority = defaults.Priority
	}
	if merged.EvictionPolicy == "" {
		merged.EvictionPolicy = defaults.EvictionPolicy
	}
	return &merged
}
