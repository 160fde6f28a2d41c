package model

// Currency represents a tradable currency from the database.
// Fiat currencies are identified by policy (a configured code set),
// not by a column on this table.
type Currency struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
