package market

import (
	"sync"

	"github.com/gridmarket/go-compute-market/models"
)

// TransactionLedger records settled payments. Records are immutable and
// Append refuses a second record for the same task id.
type TransactionLedger interface {
	Append(tx *models.PaymentTransaction) error
	GetByTask(taskId string) (*models.PaymentTransaction, error)
	List(providerId, taskId string) ([]*models.PaymentTransaction, error)
}

type MemoryTransactionLedger struct {
	lk     sync.RWMutex
	byTask map[string]*models.PaymentTransaction
	order  []string
}

func NewMemoryTransactionLedger() *MemoryTransactionLedger {
	return &MemoryTransactionLedger{
		byTask: make(map[string]*models.PaymentTransaction),
	}
}

func (m *MemoryTransactionLedger) Append(tx *models.PaymentTransaction) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	if _, ok := m.byTask[tx.TaskId]; ok {
		return ErrAlreadySettled
	}
	cloned := *tx
	m.byTask[tx.TaskId] = &cloned
	m.order = append(m.order, tx.TaskId)
	return nil
}

func (m *MemoryTransactionLedger) GetByTask(taskId string) (*models.PaymentTransaction, error) {
	m.lk.RLock()
	defer m.lk.RUnlock()

	tx, ok := m.byTask[taskId]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cloned := *tx
	return &cloned, nil
}

func (m *MemoryTransactionLedger) List(providerId, taskId string) ([]*models.PaymentTransaction, error) {
	m.lk.RLock()
	defer m.lk.RUnlock()

	var result []*models.PaymentTransaction
	for _, id := range m.order {
		tx := m.byTask[id]
		if providerId != "" && tx.ProviderId != providerId {
			continue
		}
		if taskId != "" && tx.TaskId != taskId {
			continue
		}
		cloned := *tx
		result = append(result, &cloned)
	}
	return result, nil
}
