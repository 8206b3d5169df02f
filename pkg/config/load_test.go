package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
provider:
  type: azure
  location: westus2
  resource_group: scale-test
  tags:
    team: scaling
auth:
  ssh_user: ubuntu
worker_nodes:
  hardware_profile:
    vm_size: Standard_NC6
`

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "cluster.yaml")
	if err := ioutil.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Provider.Type != ProviderAzure {
		t.Fatalf("Expected provider azure, got: %s", cfg.Provider.Type)
	}
	if cfg.Provider.Location != "westus2" || cfg.Provider.ResourceGroup != "scale-test" {
		t.Fatalf("Unexpected provider settings: %+v", cfg.Provider)
	}
	if cfg.Provider.Tags["team"] != "scaling" {
		t.Fatalf("Expected tags to load, got: %v", cfg.Provider.Tags)
	}
	if cfg.Auth.SSHUser != "ubuntu" {
		t.Fatalf("Expected ssh user ubuntu, got: %s", cfg.Auth.SSHUser)
	}
	if cfg.HeadNode != nil {
		t.Fatal("Expected absent head node section to stay nil")
	}
	if cfg.WorkerNodes == nil || cfg.WorkerNodes.HardwareProfile.VMSize != "Standard_NC6" {
		t.Fatalf("Unexpected worker nodes: %+v", cfg.WorkerNodes)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "cluster.yaml")
	if err := ioutil.WriteFile(path, []byte("provider:\n  locaton: westus2\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected misspelled field to fail strict parsing")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	cfg := &Config{
		Provider: ProviderConfig{
			Type:          ProviderACI,
			Location:      "eastus",
			ResourceGroup: "aci-test",
			SubnetID:      "/subscriptions/sub/resourceGroups/aci-test/providers/Microsoft.Network/virtualNetworks/vnet/subnets/subnet",
		},
		Auth: AuthConfig{SSHUser: "core"},
		Docker: DockerConfig{
			Image:         "rayproject/ray:latest",
			ContainerName: "scale-head",
		},
	}

	path := filepath.Join(dir, "out.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Provider.SubnetID != cfg.Provider.SubnetID {
		t.Fatalf("Subnet id did not survive round trip: %s", loaded.Provider.SubnetID)
	}
	if loaded.Docker != cfg.Docker {
		t.Fatalf("Docker section did not survive round trip: %+v", loaded.Docker)
	}
}
