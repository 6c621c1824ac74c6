package market

import (
	"context"
	"errors"
	"testing"

	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

func TestRegisterResourceDefaults(t *testing.T) {
	c := newTestController(&fakeSender{})

	resource, err := c.RegisterResource(&models.RegisterResourceRequest{
		ProviderId:    "provider-1",
		WalletAddress: "0x1111111111111111111111111111111111111111",
		Location:      "Europe",
		CpuCores:      4,
		GpuMemory:     24,
		CpuPrice:      0.0005,
		GpuPrice:      0.0060,
	})
	if err != nil {
		t.Fatal(err)
	}

	if resource.Status != constants.ResourceStatusActive {
		t.Errorf("status = %s, want active", resource.Status)
	}
	if resource.Availability != 100 {
		t.Errorf("availability = %d, want default 100", resource.Availability)
	}
	if resource.Provider != "Anonymous Provider" {
		t.Errorf("provider = %q, want the anonymous default", resource.Provider)
	}
	if resource.Id == "" || resource.CreatedAt == "" {
		t.Error("id and created_at must be set")
	}
}

func TestRegisterResourceValidation(t *testing.T) {
	c := newTestController(&fakeSender{})

	cases := []struct {
		name string
		req  models.RegisterResourceRequest
	}{
		{"negative cores", models.RegisterResourceRequest{
			ProviderId: "p", WalletAddress: "0x1111111111111111111111111111111111111111",
			Location: "x", CpuCores: -1,
		}},
		{"negative price", models.RegisterResourceRequest{
			ProviderId: "p", WalletAddress: "0x1111111111111111111111111111111111111111",
			Location: "x", CpuCores: 1, CpuPrice: -0.1,
		}},
		{"availability out of range", models.RegisterResourceRequest{
			ProviderId: "p", WalletAddress: "0x1111111111111111111111111111111111111111",
			Location: "x", CpuCores: 1, Availability: 120,
		}},
		{"rating out of range", models.RegisterResourceRequest{
			ProviderId: "p", WalletAddress: "0x1111111111111111111111111111111111111111",
			Location: "x", CpuCores: 1, Rating: 6,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.RegisterResource(&tc.req)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUpdateResource(t *testing.T) {
	c := newTestController(&fakeSender{})
	resource := registerTestResource(t, c)

	cores := 16
	price := 0.0010
	updated, err := c.UpdateResource(&models.UpdateResourceRequest{
		Id:         resource.Id,
		ProviderId: resource.ProviderId,
		CpuCores:   &cores,
		CpuPrice:   &price,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.CpuCores != 16 || updated.CpuPrice != 0.0010 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.GpuMemory != resource.GpuMemory {
		t.Errorf("untouched field changed: %d", updated.GpuMemory)
	}
	if updated.UpdatedAt == "" {
		t.Error("updated_at must be set")
	}
}

func TestUpdateResourceOwnership(t *testing.T) {
	c := newTestController(&fakeSender{})
	resource := registerTestResource(t, c)

	cores := 16
	_, err := c.UpdateResource(&models.UpdateResourceRequest{
		Id:         resource.Id,
		ProviderId: "provider-2",
		CpuCores:   &cores,
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("another provider's update: got %v, want ValidationError", err)
	}
}

func TestUpdateResourceBadStatus(t *testing.T) {
	c := newTestController(&fakeSender{})
	resource := registerTestResource(t, c)

	status := "paused"
	_, err := c.UpdateResource(&models.UpdateResourceRequest{
		Id:         resource.Id,
		ProviderId: resource.ProviderId,
		Status:     &status,
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("invalid status: got %v, want ValidationError", err)
	}
}

func TestCapacityEditDoesNotInvalidateAdmittedTask(t *testing.T) {
	sender := &fakeSender{}
	c := newTestController(sender)
	resource := registerTestResource(t, c)
	task := submitTestTask(t, c, resource.Id)
	if _, err := c.StartTask(task.Id); err != nil {
		t.Fatal(err)
	}

	// Shrink the resource below what the running task holds.
	cores := 1
	if _, err := c.UpdateResource(&models.UpdateResourceRequest{
		Id:         resource.Id,
		ProviderId: resource.ProviderId,
		CpuCores:   &cores,
	}); err != nil {
		t.Fatal(err)
	}

	// The already-admitted task still settles.
	if _, _, err := c.CompleteTask(context.Background(), task.Id, usage(60, 60)); err != nil {
		t.Errorf("admitted task must survive a capacity edit: %v", err)
	}
}

func TestListResourcesTypeFilter(t *testing.T) {
	c := newTestController(&fakeSender{})
	if _, err := c.RegisterResource(&models.RegisterResourceRequest{
		ProviderId: "provider-1", WalletAddress: "0x1111111111111111111111111111111111111111",
		Location: "x", CpuCores: 8,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.RegisterResource(&models.RegisterResourceRequest{
		ProviderId: "provider-2", WalletAddress: "0x1111111111111111111111111111111111111111",
		Location: "x", CpuCores: 2, GpuMemory: 24,
	}); err != nil {
		t.Fatal(err)
	}

	gpu, err := c.ListResources("", "gpu")
	if err != nil {
		t.Fatal(err)
	}
	if len(gpu) != 1 || gpu[0].GpuMemory != 24 {
		t.Errorf("gpu filter = %+v, want the single gpu offer", gpu)
	}

	cpu, err := c.ListResources("", "cpu")
	if err != nil {
		t.Fatal(err)
	}
	if len(cpu) != 2 {
		t.Errorf("cpu filter found %d offers, want 2", len(cpu))
	}

	byProvider, err := c.ListResources("provider-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(byProvider) != 1 {
		t.Errorf("provider filter found %d offers, want 1", len(byProvider))
	}
}
