package billing

import "github.com/google/uuid"

// Equipment is a hired plant item with its rates and idle days
type Equipment struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rates    Rates   `json:"rates"`
	IdleDays DateSet `json:"idle_days"`
}

// NewEquipment creates an item with rates derived from the weekday base rate
func NewEquipment(name string, baseRate float64) Equipment {
	return Equipment{
		ID:       uuid.NewString(),
		Name:     name,
		Rates:    DeriveRates(baseRate),
		IdleDays: DateSet{},
	}
}

// Clone returns a copy that shares no idle-day storage with e
func (e Equipment) Clone() Equipment {
	e.IdleDays = e.IdleDays.Clone()
	return e
}
