package market

import (
	"fmt"
	"os"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/gridmarket/go-compute-market/models"
	"gopkg.in/yaml.v2"
)

type seedCatalog struct {
	Resources []seedResource `yaml:"resources"`
}

type seedResource struct {
	Provider      string  `yaml:"provider"`
	ProviderId    string  `yaml:"provider_id"`
	WalletAddress string  `yaml:"wallet_address"`
	Location      string  `yaml:"location"`
	CpuCores      int     `yaml:"cpu_cores"`
	GpuMemory     int     `yaml:"gpu_memory"`
	CpuPrice      float64 `yaml:"cpu_price"`
	GpuPrice      float64 `yaml:"gpu_price"`
	Availability  int     `yaml:"availability"`
	Rating        float64 `yaml:"rating"`
}

// LoadSeedCatalog registers the resources listed in a YAML seed file, used
// to bring up a demo marketplace with pre-listed offers.
func (c *Controller) LoadSeedCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed read seed catalog, path: %s, error: %w", path, err)
	}

	var catalog seedCatalog
	if err = yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("failed parse seed catalog, path: %s, error: %w", path, err)
	}

	for _, seed := range catalog.Resources {
		resource, err := c.RegisterResource(&models.RegisterResourceRequest{
			Provider:      seed.Provider,
			ProviderId:    seed.ProviderId,
			WalletAddress: seed.WalletAddress,
			Location:      seed.Location,
			CpuCores:      seed.CpuCores,
			GpuMemory:     seed.GpuMemory,
			CpuPrice:      seed.CpuPrice,
			GpuPrice:      seed.GpuPrice,
			Availability:  seed.Availability,
			Rating:        seed.Rating,
		})
		if err != nil {
			logs.GetLogger().Errorf("failed seed resource, provider: %s, error: %+v", seed.ProviderId, err)
			continue
		}
		logs.GetLogger().Infof("seeded resource: %s", resource.Id)
	}
	return nil
}
