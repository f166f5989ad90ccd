package entity

// Snapshot is the persisted state of a tracker: every expense in insertion
// order plus the selected display currency.
type Snapshot struct {
	Expenses        []Expense
	DisplayCurrency string
}
