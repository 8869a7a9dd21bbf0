package models

import "konnect-service-go/internal/payload"

// Signal is a strategy trigger for a symbol on a given day.
// (Date, Strategy, Symbol) is unique.
type Signal struct {
	RowID    uint64   `gorm:"column:my_row_id;primaryKey;autoIncrement" json:"my_row_id"`
	Date     string   `gorm:"column:adate;size:10;not null;uniqueIndex:uc_signal,priority:1" json:"adate"`
	Symbol   string   `gorm:"column:asymbol;size:30;not null;uniqueIndex:uc_signal,priority:3" json:"asymbol"`
	Strategy string   `gorm:"column:astrategy;size:30;not null;uniqueIndex:uc_signal,priority:2" json:"astrategy"`
	Price    *float64 `gorm:"column:aprice" json:"aprice"`
	Counter  *int64   `gorm:"column:acounter" json:"acounter"`
	Time     *string  `gorm:"column:atime;size:8" json:"atime"`
}

func (Signal) TableName() string {
	return "signals"
}

// SignalInput is the body of POST /signals and PUT /signals/{id}.
type SignalInput struct {
	Date     payload.Field[string]  `json:"adate,omitzero" validate:"present"`
	Symbol   payload.Field[string]  `json:"asymbol,omitzero" validate:"present"`
	Strategy payload.Field[string]  `json:"astrategy,omitzero" validate:"present"`
	Price    payload.Field[float64] `json:"aprice,omitzero"`
	Counter  payload.Field[int64]   `json:"acounter,omitzero"`
	Time     payload.Field[string]  `json:"atime,omitzero"`
}

// NullColumns lists the NOT NULL columns the input would set to null.
func (in SignalInput) NullColumns() []string {
	return nullColumns(map[string]bool{
		"adate":     in.Date.IsNull(),
		"asymbol":   in.Symbol.IsNull(),
		"astrategy": in.Strategy.IsNull(),
	})
}

// Apply merges the present fields of in over s.
func (in SignalInput) Apply(s *Signal) {
	in.Date.ApplyTo(&s.Date)
	in.Symbol.ApplyTo(&s.Symbol)
	in.Strategy.ApplyTo(&s.Strategy)
	in.Price.ApplyToPtr(&s.Price)
	in.Counter.ApplyToPtr(&s.Counter)
	in.Time.ApplyToPtr(&s.Time)
}
