package wallet

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
)

// Sender transfers a settlement amount between wallet addresses and returns
// an opaque receipt id. The engine never inspects the receipt beyond
// non-emptiness.
type Sender interface {
	Send(ctx context.Context, from, to string, amount float64) (string, error)
}

// SimulatedSender fabricates receipts without touching a chain. It is only
// used when a caller explicitly asks for a simulated settlement; a real
// transfer failure never falls back to it.
type SimulatedSender struct{}

func NewSimulatedSender() *SimulatedSender {
	return &SimulatedSender{}
}

func (s *SimulatedSender) Send(ctx context.Context, from, to string, amount float64) (string, error) {
	hash := make([]byte, 32)
	if _, err := rand.Read(hash); err != nil {
		return "", err
	}
	receipt := "0x" + hex.EncodeToString(hash)
	logs.GetLogger().Infof("simulated transfer, from: %s, to: %s, amount: %f, receipt: %s", from, to, amount, receipt)
	return receipt, nil
}
