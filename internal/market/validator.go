package market

import (
	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

// CanAdmit reports whether a resource can satisfy the requested cores and
// memory. Capacity is evaluated against the advertised numbers; reservation
// accounting against concurrent admissions lives in the registry.
func CanAdmit(resource *models.Resource, cpuCores, gpuMemory int) bool {
	if resource == nil {
		return false
	}
	if resource.Status != constants.ResourceStatusActive {
		return false
	}
	return resource.CpuCores >= cpuCores && resource.GpuMemory >= gpuMemory
}
