package core

// Snapshot is a fully-derived, consistent read of the ledger. Every
// mutating operation returns one, so callers never recompute balances
// or pet state themselves.
type Snapshot struct {
	Balance      Money         `json:"balance"`
	Budget       Money         `json:"budget"`
	Spent        Money         `json:"spent"`
	Pet          PetStatus     `json:"pet"`
	Transactions []Transaction `json:"transactions"`
}
