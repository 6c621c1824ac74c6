package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/google/uuid"
	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
	"github.com/gridmarket/go-compute-market/wallet"
)

// Controller drives tasks through pending -> running -> completed (or
// failed) and settles usage against the consumer's wallet. All task mutation
// goes through here; stores and the payment sender are injected.
type Controller struct {
	resources ResourceStore
	tasks     TaskStore
	ledger    TransactionLedger
	sender    wallet.Sender
	simulator wallet.Sender
	capacity  *capacityLedger
	events    *EventHub

	taskLocks sync.Map
}

func NewController(resources ResourceStore, tasks TaskStore, ledger TransactionLedger, sender wallet.Sender) *Controller {
	return &Controller{
		resources: resources,
		tasks:     tasks,
		ledger:    ledger,
		sender:    sender,
		simulator: wallet.NewSimulatedSender(),
		capacity:  newCapacityLedger(),
		events:    NewEventHub(),
	}
}

func (c *Controller) Events() *EventHub {
	return c.events
}

// lockFor serializes state transitions per task id. Complete must hold this
// so that only one caller can move a task out of running.
func (c *Controller) lockFor(taskId string) *sync.Mutex {
	lock, _ := c.taskLocks.LoadOrStore(taskId, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// SubmitTask admits a task against its resource. A rejected submission
// creates no task record.
func (c *Controller) SubmitTask(req *models.SubmitTaskRequest) (*models.Task, error) {
	if req.CpuCores < 0 {
		return nil, &ValidationError{Field: "cpu_cores", Reason: "must not be negative"}
	}
	if req.GpuMemory < 0 {
		return nil, &ValidationError{Field: "gpu_memory", Reason: "must not be negative"}
	}
	if req.CpuCores == 0 && req.GpuMemory == 0 {
		return nil, &ValidationError{Field: "cpu_cores", Reason: "task requests no capacity"}
	}
	if strings.TrimSpace(req.WalletAddress) == "" {
		return nil, &ValidationError{Field: "wallet_address", Reason: "must not be empty"}
	}

	resource, err := c.resources.Get(req.ResourceId)
	if err != nil {
		return nil, err
	}

	if !CanAdmit(resource, req.CpuCores, req.GpuMemory) {
		return nil, &CapacityError{ResourceId: resource.Id, Reason: "requested capacity exceeds the resource"}
	}
	if err = c.capacity.Reserve(resource, req.CpuCores, req.GpuMemory); err != nil {
		return nil, err
	}

	task := &models.Task{
		Id:            "task-" + uuid.NewString(),
		Type:          req.Type,
		Description:   req.Description,
		ConsumerId:    req.ConsumerId,
		ProviderId:    resource.ProviderId,
		ResourceId:    resource.Id,
		WalletAddress: req.WalletAddress,
		CpuCores:      req.CpuCores,
		GpuMemory:     req.GpuMemory,
		Status:        constants.TaskStatusPending,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err = c.tasks.Create(task); err != nil {
		c.capacity.Release(resource.Id, req.CpuCores, req.GpuMemory)
		return nil, err
	}

	logs.GetLogger().Infof("task admitted, id: %s, resource: %s, cpu: %d, gpu: %d GB",
		task.Id, resource.Id, task.CpuCores, task.GpuMemory)
	c.events.Publish(task.Id, task.Status)
	return task, nil
}

// StartTask records the start timestamp. Starting a task that is already
// running is a no-op.
func (c *Controller) StartTask(taskId string) (*models.Task, error) {
	lock := c.lockFor(taskId)
	lock.Lock()
	defer lock.Unlock()

	task, err := c.tasks.Get(taskId)
	if err != nil {
		return nil, err
	}

	switch task.Status {
	case constants.TaskStatusRunning:
		return task, nil
	case constants.TaskStatusPending:
	default:
		return nil, ErrTaskTerminal
	}

	now := time.Now().UTC().Format(time.RFC3339)
	task.Status = constants.TaskStatusRunning
	task.StartTime = now
	task.UpdatedAt = now
	if err = c.tasks.UpdateIfStatus(task, constants.TaskStatusPending); err != nil {
		return nil, err
	}

	c.events.Publish(task.Id, task.Status)
	return task, nil
}

// CompleteTask prices the elapsed usage, transfers the payment from the
// consumer's wallet to the provider's, and records the settlement. On a
// transfer failure the task stays running and the call may be retried;
// a second completion of a settled task is rejected.
func (c *Controller) CompleteTask(ctx context.Context, taskId string, req *models.CompleteTaskRequest) (*models.Task, *models.PaymentTransaction, error) {
	lock := c.lockFor(taskId)
	lock.Lock()
	defer lock.Unlock()

	task, err := c.tasks.Get(taskId)
	if err != nil {
		return nil, nil, err
	}

	switch task.Status {
	case constants.TaskStatusCompleted:
		return nil, nil, ErrAlreadySettled
	case constants.TaskStatusFailed:
		return nil, nil, ErrTaskTerminal
	case constants.TaskStatusRunning:
	default:
		return nil, nil, ErrTaskNotRunning
	}

	resource, err := c.resources.Get(task.ResourceId)
	if err != nil {
		return nil, nil, err
	}

	endTime := time.Now().UTC()
	cpuSeconds, gpuSeconds, err := resolveUsage(task, req, endTime)
	if err != nil {
		return nil, nil, err
	}

	cost := CalculateCost(
		task.CpuCores, cpuSeconds, PerSecondRate(resource.CpuPrice),
		task.GpuMemory, gpuSeconds, PerSecondRate(resource.GpuPrice))

	sender := c.sender
	if req != nil && req.Simulate {
		sender = c.simulator
	}

	receipt, err := sender.Send(ctx, task.WalletAddress, resource.WalletAddress, cost.TotalCost)
	if err != nil {
		logs.GetLogger().Errorf("payment transfer failed, task: %s, amount: %f, error: %+v", task.Id, cost.TotalCost, err)
		return nil, nil, &TransferError{Err: err}
	}
	if strings.TrimSpace(receipt) == "" {
		return nil, nil, &TransferError{Err: ErrEmptyReceipt}
	}

	task.Status = constants.TaskStatusCompleted
	task.EndTime = endTime.Format(time.RFC3339)
	task.Duration = FormatDuration(cpuSeconds)
	task.CpuPayment = cost.CpuCost
	task.GpuPayment = cost.GpuCost
	task.TotalPayment = cost.TotalCost
	task.TransactionHash = receipt
	task.UpdatedAt = task.EndTime

	if err = c.tasks.UpdateIfStatus(task, constants.TaskStatusRunning); err != nil {
		return nil, nil, ErrAlreadySettled
	}

	tx := &models.PaymentTransaction{
		TaskId:                task.Id,
		ProviderId:            task.ProviderId,
		ConsumerWalletAddress: task.WalletAddress,
		ProviderWalletAddress: resource.WalletAddress,
		CpuPayment:            cost.CpuCost,
		GpuPayment:            cost.GpuCost,
		TotalPayment:          cost.TotalCost,
		TransactionHash:       receipt,
		Timestamp:             task.EndTime,
	}
	if err = c.ledger.Append(tx); err != nil {
		logs.GetLogger().Errorf("settlement record refused, task: %s, error: %+v", task.Id, err)
		return nil, nil, err
	}

	c.capacity.Release(task.ResourceId, task.CpuCores, task.GpuMemory)
	logs.GetLogger().Infof("task settled, id: %s, total: %f, receipt: %s", task.Id, cost.TotalCost, receipt)
	c.events.Publish(task.Id, task.Status)
	return task, tx, nil
}

// FailTask aborts a pending or running task. No payment is computed or sent
// regardless of elapsed usage.
func (c *Controller) FailTask(taskId string) (*models.Task, error) {
	lock := c.lockFor(taskId)
	lock.Lock()
	defer lock.Unlock()

	task, err := c.tasks.Get(taskId)
	if err != nil {
		return nil, err
	}

	switch task.Status {
	case constants.TaskStatusPending, constants.TaskStatusRunning:
	default:
		return nil, ErrTaskTerminal
	}

	previous := task.Status
	now := time.Now().UTC().Format(time.RFC3339)
	task.Status = constants.TaskStatusFailed
	task.EndTime = now
	task.UpdatedAt = now
	if err = c.tasks.UpdateIfStatus(task, previous); err != nil {
		return nil, err
	}

	c.capacity.Release(task.ResourceId, task.CpuCores, task.GpuMemory)
	logs.GetLogger().Infof("task failed, id: %s", task.Id)
	c.events.Publish(task.Id, task.Status)
	return task, nil
}

func (c *Controller) GetTask(taskId string) (*models.Task, error) {
	return c.tasks.Get(taskId)
}

func (c *Controller) ListTasks(filter TaskFilter) ([]*models.Task, error) {
	return c.tasks.List(filter)
}

func (c *Controller) ListTransactions(providerId, taskId string) ([]*models.PaymentTransaction, error) {
	return c.ledger.List(providerId, taskId)
}

func resolveUsage(task *models.Task, req *models.CompleteTaskRequest, endTime time.Time) (float64, float64, error) {
	var elapsed float64
	if task.StartTime != "" {
		startTime, err := time.Parse(time.RFC3339, task.StartTime)
		if err != nil {
			return 0, 0, &ValidationError{Field: "start_time", Reason: "not a valid RFC 3339 timestamp"}
		}
		elapsed = endTime.Sub(startTime).Seconds()
		if elapsed < 0 {
			elapsed = 0
		}
	}

	cpuSeconds, gpuSeconds := elapsed, elapsed
	if req != nil && req.CpuSeconds != nil {
		cpuSeconds = *req.CpuSeconds
	}
	if req != nil && req.GpuSeconds != nil {
		gpuSeconds = *req.GpuSeconds
	}
	if cpuSeconds < 0 {
		return 0, 0, &ValidationError{Field: "cpu_seconds", Reason: "must not be negative"}
	}
	if gpuSeconds < 0 {
		return 0, 0, &ValidationError{Field: "gpu_seconds", Reason: "must not be negative"}
	}
	return cpuSeconds, gpuSeconds, nil
}
