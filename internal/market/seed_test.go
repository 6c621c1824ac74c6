package market

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedCatalog(t *testing.T) {
	seed := `resources:
  - provider: CloudCompute
    provider_id: provider-1
    wallet_address: "0x1111111111111111111111111111111111111111"
    location: North America
    cpu_cores: 8
    gpu_memory: 16
    cpu_price: 0.0008
    gpu_price: 0.0045
    availability: 95
    rating: 4.8
  - provider: GPUMaster
    provider_id: provider-2
    wallet_address: "0x3333333333333333333333333333333333333333"
    location: Europe
    cpu_cores: 4
    gpu_memory: 24
    cpu_price: 0.0005
    gpu_price: 0.0060
    availability: 90
    rating: 4.5
`
	path := filepath.Join(t.TempDir(), "resources.yaml")
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	c := newTestController(&fakeSender{})
	if err := c.LoadSeedCatalog(path); err != nil {
		t.Fatal(err)
	}

	resources, err := c.ListResources("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(resources) != 2 {
		t.Fatalf("seeded %d resources, want 2", len(resources))
	}

	byProvider, _ := c.ListResources("provider-2", "")
	if len(byProvider) != 1 || byProvider[0].GpuMemory != 24 {
		t.Errorf("provider-2 seed = %+v", byProvider)
	}
}

func TestLoadSeedCatalogMissingFile(t *testing.T) {
	c := newTestController(&fakeSender{})
	if err := c.LoadSeedCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing seed file")
	}
}
