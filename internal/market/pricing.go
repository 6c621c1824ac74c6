package market

import (
	"fmt"
	"math"

	"github.com/gridmarket/go-compute-market/constants"
)

// Cost is the priced usage of one task.
type Cost struct {
	CpuCost   float64
	GpuCost   float64
	TotalCost float64
}

// CalculateCost converts elapsed usage into a cost. It is unit-agnostic: the
// caller must pass rates in the same time unit as the usage quantities.
// Pure, no clock and no global state.
func CalculateCost(cpuCores int, cpuUnits, cpuRate float64, gpuMemory int, gpuUnits, gpuRate float64) Cost {
	cpuCost := float64(cpuCores) * cpuUnits * cpuRate
	gpuCost := float64(gpuMemory) * gpuUnits * gpuRate
	return Cost{
		CpuCost:   cpuCost,
		GpuCost:   gpuCost,
		TotalCost: cpuCost + gpuCost,
	}
}

// PerSecondRate derives a per-second rate from an advertised hourly price.
func PerSecondRate(hourlyRate float64) float64 {
	return hourlyRate / constants.SECONDS_PER_HOUR
}

// FormatDuration renders elapsed seconds as the display string shown next to
// completed tasks, e.g. "45 min". Presentation only.
func FormatDuration(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	return fmt.Sprintf("%d min", minutes)
}
