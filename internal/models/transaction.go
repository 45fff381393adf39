package models

import "time"

// Transaction is the row shape of the transaction (conversion ledger) table.
// SourceCurrency and TargetCurrency reference currency.abbreviation.
type Transaction struct {
	TransactionID   int64     `db:"transaction_id"`
	SourceCurrency  string    `db:"source_currency"`
	TargetCurrency  string    `db:"target_currency"`
	SourceAmount    float64   `db:"source_amount"`
	TargetAmount    float64   `db:"target_amount"`
	TransactionDate time.Time `db:"transaction_date"`
}
