package market

import (
	"strings"
	"time"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/google/uuid"
	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

// RegisterResource lists a new compute offer. New resources come up active
// with full availability unless the provider says otherwise.
func (c *Controller) RegisterResource(req *models.RegisterResourceRequest) (*models.Resource, error) {
	if req.CpuCores < 0 {
		return nil, &ValidationError{Field: "cpu_cores", Reason: "must not be negative"}
	}
	if req.GpuMemory < 0 {
		return nil, &ValidationError{Field: "gpu_memory", Reason: "must not be negative"}
	}
	if req.CpuPrice < 0 || req.GpuPrice < 0 {
		return nil, &ValidationError{Field: "cpu_price", Reason: "rates must not be negative"}
	}
	if req.Availability < 0 || req.Availability > 100 {
		return nil, &ValidationError{Field: "availability", Reason: "must be a 0-100 percentage"}
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, &ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}

	provider := req.Provider
	if strings.TrimSpace(provider) == "" {
		provider = "Anonymous Provider"
	}
	availability := req.Availability
	if availability == 0 {
		availability = 100
	}

	resource := &models.Resource{
		Id:            "resource-" + uuid.NewString(),
		Provider:      provider,
		ProviderId:    req.ProviderId,
		WalletAddress: req.WalletAddress,
		Location:      req.Location,
		CpuCores:      req.CpuCores,
		GpuMemory:     req.GpuMemory,
		CpuPrice:      req.CpuPrice,
		GpuPrice:      req.GpuPrice,
		Availability:  availability,
		Rating:        req.Rating,
		Status:        constants.ResourceStatusActive,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.resources.Upsert(resource); err != nil {
		return nil, err
	}

	logs.GetLogger().Infof("resource registered, id: %s, provider: %s, cpu: %d, gpu: %d GB",
		resource.Id, resource.ProviderId, resource.CpuCores, resource.GpuMemory)
	return resource, nil
}

// UpdateResource applies provider edits. Only the owning provider may mutate
// a resource. Capacity edits do not retroactively invalidate tasks that were
// already admitted.
func (c *Controller) UpdateResource(req *models.UpdateResourceRequest) (*models.Resource, error) {
	resource, err := c.resources.Get(req.Id)
	if err != nil {
		return nil, err
	}
	if resource.ProviderId != req.ProviderId {
		return nil, &ValidationError{Field: "provider_id", Reason: "resource belongs to another provider"}
	}

	if req.Location != nil {
		resource.Location = *req.Location
	}
	if req.CpuCores != nil {
		if *req.CpuCores < 0 {
			return nil, &ValidationError{Field: "cpu_cores", Reason: "must not be negative"}
		}
		resource.CpuCores = *req.CpuCores
	}
	if req.GpuMemory != nil {
		if *req.GpuMemory < 0 {
			return nil, &ValidationError{Field: "gpu_memory", Reason: "must not be negative"}
		}
		resource.GpuMemory = *req.GpuMemory
	}
	if req.CpuPrice != nil {
		if *req.CpuPrice < 0 {
			return nil, &ValidationError{Field: "cpu_price", Reason: "must not be negative"}
		}
		resource.CpuPrice = *req.CpuPrice
	}
	if req.GpuPrice != nil {
		if *req.GpuPrice < 0 {
			return nil, &ValidationError{Field: "gpu_price", Reason: "must not be negative"}
		}
		resource.GpuPrice = *req.GpuPrice
	}
	if req.Availability != nil {
		if *req.Availability < 0 || *req.Availability > 100 {
			return nil, &ValidationError{Field: "availability", Reason: "must be a 0-100 percentage"}
		}
		resource.Availability = *req.Availability
	}
	if req.Status != nil {
		if *req.Status != constants.ResourceStatusActive && *req.Status != constants.ResourceStatusInactive {
			return nil, &ValidationError{Field: "status", Reason: "must be active or inactive"}
		}
		resource.Status = *req.Status
	}
	resource.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err = c.resources.Upsert(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// RemoveResource delists a resource. Refused while admitted tasks still hold
// capacity on it; the provider should deactivate instead.
func (c *Controller) RemoveResource(id, providerId string) error {
	resource, err := c.resources.Get(id)
	if err != nil {
		return err
	}
	if resource.ProviderId != providerId {
		return &ValidationError{Field: "provider_id", Reason: "resource belongs to another provider"}
	}
	if c.capacity.InUse(id) {
		return ErrResourceInUse
	}
	return c.resources.Remove(id)
}

func (c *Controller) GetResource(id string) (*models.Resource, error) {
	return c.resources.Get(id)
}

// ListResources filters by provider and by resource type ("cpu" keeps
// offers with cores, "gpu" keeps offers with gpu memory).
func (c *Controller) ListResources(providerId, resourceType string) ([]*models.Resource, error) {
	var resources []*models.Resource
	var err error
	if providerId != "" {
		resources, err = c.resources.ListByProvider(providerId)
	} else {
		resources, err = c.resources.List()
	}
	if err != nil {
		return nil, err
	}

	switch resourceType {
	case "cpu":
		resources = keepResources(resources, func(r *models.Resource) bool { return r.CpuCores > 0 })
	case "gpu":
		resources = keepResources(resources, func(r *models.Resource) bool { return r.GpuMemory > 0 })
	}
	return resources, nil
}

func keepResources(resources []*models.Resource, keep func(*models.Resource) bool) []*models.Resource {
	var result []*models.Resource
	for _, resource := range resources {
		if keep(resource) {
			result = append(result, resource)
		}
	}
	return result
}
