package model

import "fmt"

// Anomaly reports server data that violates an invariant this layer depends
// on — a summary that doesn't reconcile with its log, a ledger entry whose
// sign contradicts its type. Anomalies are flagged, never silently fixed.
type Anomaly struct {
	Field  string
	Detail string
}

func (a *Anomaly) Error() string {
	return fmt.Sprintf("data integrity anomaly in %s: %s", a.Field, a.Detail)
}

// CheckTransaction verifies the sign convention for a ledger entry:
// usage entries must be negative, topup and refund non-negative.
func CheckTransaction(tx Transaction) *Anomaly {
	switch tx.Type {
	case TxUsage:
		if tx.Amount > 0 {
			return &Anomaly{
				Field:  "transaction " + tx.ID,
				Detail: fmt.Sprintf("usage entry with positive amount %+.6f", tx.Amount),
			}
		}
	case TxTopUp, TxRefund:
		if tx.Amount < 0 {
			return &Anomaly{
				Field:  "transaction " + tx.ID,
				Detail: fmt.Sprintf("%s entry with negative amount %+.6f", tx.Type, tx.Amount),
			}
		}
	default:
		return &Anomaly{
			Field:  "transaction " + tx.ID,
			Detail: fmt.Sprintf("unknown transaction type %q", tx.Type),
		}
	}
	return nil
}
