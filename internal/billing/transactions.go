package billing

import (
	"context"

	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/model"
)

// Ledger is the transaction history plus any integrity anomalies found in
// it. Anomalous entries stay in Transactions exactly as the server sent
// them; Anomalies just points at what is wrong.
type Ledger struct {
	Transactions []model.Transaction
	Anomalies    []model.Anomaly
}

// LoadLedger fetches the transaction history and screens every entry
// against the sign convention (usage negative, topup/refund non-negative).
func LoadLedger(ctx context.Context, client *gateway.Client) (*Ledger, error) {
	txs, err := client.Transactions(ctx)
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{Transactions: txs}
	for _, tx := range txs {
		if a := model.CheckTransaction(tx); a != nil {
			ledger.Anomalies = append(ledger.Anomalies, *a)
		}
	}
	return ledger, nil
}
