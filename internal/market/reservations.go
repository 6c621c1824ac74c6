package market

import (
	"fmt"
	"sync"

	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

type reservation struct {
	CpuCores  int
	GpuMemory int
	Tasks     int
}

// capacityLedger tracks admitted-but-unsettled usage per resource so that
// concurrent admissions cannot jointly oversubscribe one resource's declared
// capacity. Reserve checks and claims in one critical section; Release gives
// the claim back on completion or failure.
type capacityLedger struct {
	lk       sync.Mutex
	reserved map[string]*reservation
}

func newCapacityLedger() *capacityLedger {
	return &capacityLedger{
		reserved: make(map[string]*reservation),
	}
}

func (c *capacityLedger) Reserve(resource *models.Resource, cpuCores, gpuMemory int) error {
	c.lk.Lock()
	defer c.lk.Unlock()

	if resource.Status != constants.ResourceStatusActive {
		return &CapacityError{ResourceId: resource.Id, Reason: "resource is not active"}
	}

	held := c.reserved[resource.Id]
	heldCpu, heldGpu := 0, 0
	if held != nil {
		heldCpu, heldGpu = held.CpuCores, held.GpuMemory
	}

	if resource.CpuCores-heldCpu < cpuCores {
		return &CapacityError{
			ResourceId: resource.Id,
			Reason:     fmt.Sprintf("requested %d cpu cores, %d available", cpuCores, resource.CpuCores-heldCpu),
		}
	}
	if resource.GpuMemory-heldGpu < gpuMemory {
		return &CapacityError{
			ResourceId: resource.Id,
			Reason:     fmt.Sprintf("requested %d GB gpu memory, %d available", gpuMemory, resource.GpuMemory-heldGpu),
		}
	}

	if held == nil {
		held = &reservation{}
		c.reserved[resource.Id] = held
	}
	held.CpuCores += cpuCores
	held.GpuMemory += gpuMemory
	held.Tasks++
	return nil
}

func (c *capacityLedger) Release(resourceId string, cpuCores, gpuMemory int) {
	c.lk.Lock()
	defer c.lk.Unlock()

	held, ok := c.reserved[resourceId]
	if !ok {
		return
	}
	held.CpuCores -= cpuCores
	held.GpuMemory -= gpuMemory
	held.Tasks--
	if held.Tasks <= 0 {
		delete(c.reserved, resourceId)
	}
}

// InUse reports whether any admitted task still holds capacity on the
// resource. Removal of a resource is refused while this is true.
func (c *capacityLedger) InUse(resourceId string) bool {
	c.lk.Lock()
	defer c.lk.Unlock()

	held, ok := c.reserved[resourceId]
	return ok && held.Tasks > 0
}
