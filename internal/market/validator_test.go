package market

import (
	"testing"

	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

func TestCanAdmit(t *testing.T) {
	resource := &models.Resource{
		Id:        "resource-1",
		CpuCores:  8,
		GpuMemory: 16,
		Status:    constants.ResourceStatusActive,
	}

	cases := []struct {
		name      string
		status    string
		cpuCores  int
		gpuMemory int
		want      bool
	}{
		{"fits", constants.ResourceStatusActive, 4, 8, true},
		{"exact fit", constants.ResourceStatusActive, 8, 16, true},
		{"too many cores", constants.ResourceStatusActive, 10, 8, false},
		{"too much memory", constants.ResourceStatusActive, 4, 24, false},
		{"inactive always refuses", constants.ResourceStatusInactive, 1, 1, false},
		{"inactive refuses zero request", constants.ResourceStatusInactive, 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resource.Status = tc.status
			if got := CanAdmit(resource, tc.cpuCores, tc.gpuMemory); got != tc.want {
				t.Errorf("CanAdmit(%d cores, %d GB) = %v, want %v", tc.cpuCores, tc.gpuMemory, got, tc.want)
			}
		})
	}
}

func TestCanAdmitNilResource(t *testing.T) {
	if CanAdmit(nil, 1, 1) {
		t.Error("nil resource must not admit")
	}
}
