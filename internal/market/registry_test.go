package market

import (
	"errors"
	"testing"

	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

func testResource(id, providerId string) *models.Resource {
	return &models.Resource{
		Id:            id,
		Provider:      "CloudCompute",
		ProviderId:    providerId,
		WalletAddress: "0x1111111111111111111111111111111111111111",
		Location:      "North America",
		CpuCores:      8,
		GpuMemory:     16,
		CpuPrice:      0.0008,
		GpuPrice:      0.0045,
		Availability:  95,
		Rating:        4.8,
		Status:        constants.ResourceStatusActive,
	}
}

func TestMemoryResourceStore(t *testing.T) {
	store := NewMemoryResourceStore()

	if _, err := store.Get("resource-1"); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}

	if err := store.Upsert(testResource("resource-1", "provider-1")); err != nil {
		t.Fatal(err)
	}
	inactive := testResource("resource-2", "provider-2")
	inactive.Status = constants.ResourceStatusInactive
	if err := store.Upsert(inactive); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get("resource-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ProviderId != "provider-1" || got.CpuCores != 8 {
		t.Errorf("unexpected resource: %+v", got)
	}

	active, err := store.ListActive()
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Id != "resource-1" {
		t.Errorf("ListActive = %+v, want only resource-1", active)
	}

	byProvider, err := store.ListByProvider("provider-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(byProvider) != 1 || byProvider[0].Id != "resource-2" {
		t.Errorf("ListByProvider = %+v, want only resource-2", byProvider)
	}

	if err := store.Remove("resource-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("resource-1"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound after remove, got %v", err)
	}
	if err := store.Remove("resource-1"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("removing a missing resource must fail, got %v", err)
	}
}

func TestMemoryResourceStoreReturnsCopies(t *testing.T) {
	store := NewMemoryResourceStore()
	if err := store.Upsert(testResource("resource-1", "provider-1")); err != nil {
		t.Fatal(err)
	}

	got, _ := store.Get("resource-1")
	got.CpuCores = 999

	again, _ := store.Get("resource-1")
	if again.CpuCores != 8 {
		t.Errorf("store leaked internal state, cpu cores = %d", again.CpuCores)
	}
}

func TestCapacityLedgerReserve(t *testing.T) {
	ledger := newCapacityLedger()
	resource := testResource("resource-1", "provider-1")

	if err := ledger.Reserve(resource, 4, 8); err != nil {
		t.Fatalf("first reservation should fit: %v", err)
	}
	if err := ledger.Reserve(resource, 4, 8); err != nil {
		t.Fatalf("second reservation should still fit: %v", err)
	}

	// 8 of 8 cores held now; any further cpu request must be refused.
	err := ledger.Reserve(resource, 1, 0)
	var capacityErr *CapacityError
	if !errors.As(err, &capacityErr) {
		t.Fatalf("expected CapacityError on oversubscription, got %v", err)
	}

	ledger.Release(resource.Id, 4, 8)
	if err := ledger.Reserve(resource, 4, 8); err != nil {
		t.Errorf("released capacity should be reservable again: %v", err)
	}
}

func TestCapacityLedgerInactiveResource(t *testing.T) {
	ledger := newCapacityLedger()
	resource := testResource("resource-1", "provider-1")
	resource.Status = constants.ResourceStatusInactive

	err := ledger.Reserve(resource, 1, 1)
	var capacityErr *CapacityError
	if !errors.As(err, &capacityErr) {
		t.Fatalf("expected CapacityError for inactive resource, got %v", err)
	}
}

func TestCapacityLedgerInUse(t *testing.T) {
	ledger := newCapacityLedger()
	resource := testResource("resource-1", "provider-1")

	if ledger.InUse(resource.Id) {
		t.Error("fresh resource must not be in use")
	}

	if err := ledger.Reserve(resource, 2, 0); err != nil {
		t.Fatal(err)
	}
	if !ledger.InUse(resource.Id) {
		t.Error("reserved resource must be in use")
	}

	ledger.Release(resource.Id, 2, 0)
	if ledger.InUse(resource.Id) {
		t.Error("fully released resource must not be in use")
	}
}
