package market

import (
	"math"
	"testing"
)

const epsilon = 1e-12

func TestCalculateCostTotalIsSumOfParts(t *testing.T) {
	cases := []struct {
		name      string
		cpuCores  int
		cpuUnits  float64
		cpuRate   float64
		gpuMemory int
		gpuUnits  float64
		gpuRate   float64
	}{
		{"cpu and gpu", 4, 2700, 0.0008 / 3600, 8, 2700, 0.0045 / 3600},
		{"cpu only", 8, 900, 0.0005 / 3600, 0, 900, 0.0060 / 3600},
		{"zero usage", 4, 0, 0.0008 / 3600, 8, 0, 0.0045 / 3600},
		{"zero rates", 4, 2700, 0, 8, 2700, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cost := CalculateCost(tc.cpuCores, tc.cpuUnits, tc.cpuRate, tc.gpuMemory, tc.gpuUnits, tc.gpuRate)
			if math.Abs(cost.TotalCost-(cost.CpuCost+cost.GpuCost)) > epsilon {
				t.Errorf("total %v != cpu %v + gpu %v", cost.TotalCost, cost.CpuCost, cost.GpuCost)
			}
		})
	}
}

func TestCalculateCostKnownScenario(t *testing.T) {
	// 45 minutes on 4 cores and 8 GPU-GB at 0.0008/h and 0.0045/h.
	cost := CalculateCost(4, 2700, PerSecondRate(0.0008), 8, 2700, PerSecondRate(0.0045))

	if math.Abs(cost.CpuCost-0.0024) > 1e-9 {
		t.Errorf("cpu cost = %v, want 0.0024", cost.CpuCost)
	}
	if math.Abs(cost.GpuCost-0.027) > 1e-9 {
		t.Errorf("gpu cost = %v, want 0.027", cost.GpuCost)
	}
	if math.Abs(cost.TotalCost-0.0294) > 1e-9 {
		t.Errorf("total cost = %v, want 0.0294", cost.TotalCost)
	}
}

func TestCalculateCostIsPure(t *testing.T) {
	first := CalculateCost(4, 2700, 0.0008/3600, 8, 2700, 0.0045/3600)
	second := CalculateCost(4, 2700, 0.0008/3600, 8, 2700, 0.0045/3600)

	if first != second {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
}

func TestPerSecondRate(t *testing.T) {
	if got := PerSecondRate(3600); got != 1 {
		t.Errorf("PerSecondRate(3600) = %v, want 1", got)
	}
	if got := PerSecondRate(0); got != 0 {
		t.Errorf("PerSecondRate(0) = %v, want 0", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{2700, "45 min"},
		{1800, "30 min"},
		{89, "1 min"},
		{0, "0 min"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
