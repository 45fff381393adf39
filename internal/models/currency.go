package models

// Currency is the row shape of the currency table.
type Currency struct {
	Abbreviation string  `db:"abbreviation"` // CHAR(3), primary key
	Name         string  `db:"name"`
	RateToUSD    float64 `db:"rate_to_usd"`
}
