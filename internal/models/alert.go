package models

import "konnect-service-go/internal/payload"

// Alert tracks one order placed by a user for a symbol on a given day.
// (Date, UserID, Symbol) is unique.
type Alert struct {
	RowID          uint64  `gorm:"column:my_row_id;primaryKey;autoIncrement" json:"my_row_id"`
	Date           string  `gorm:"column:Date;size:10;not null;uniqueIndex:uc_alert,priority:1" json:"Date"`
	UserID         string  `gorm:"column:user_id;size:100;not null;uniqueIndex:uc_alert,priority:2" json:"userId"`
	Symbol         string  `gorm:"column:Symbol;size:30;not null;uniqueIndex:uc_alert,priority:3" json:"Symbol"`
	OrderNo        string  `gorm:"column:OrderNo;size:30;not null" json:"Order No."`
	OrderStatus    string  `gorm:"column:OrderStatus;size:30;not null" json:"Order Status"`
	Quantity       int64   `gorm:"column:Quantity;not null" json:"Quantity"`
	BuyPrice       float64 `gorm:"column:BuyPrice;not null" json:"Buy Price"`
	LastTradePrice float64 `gorm:"column:LastTradePrice;not null" json:"Last Trade Price"`
	ProfitLoss     float64 `gorm:"column:ProfitLoss;not null" json:"Profit/Loss"`
	ProfitLossPct  float64 `gorm:"column:ProfitLossPercentage;not null" json:"Profit/Loss %"`
	OCOOrderNo     *string `gorm:"column:OCOOrderNo;size:30" json:"OCO Order No."`
	OCOStatus      *string `gorm:"column:OCOStatus;size:30" json:"OCO Status"`
	OverallStatus  string  `gorm:"column:OverallStatus;size:30;not null" json:"Overall Status"`
}

func (Alert) TableName() string {
	return "alert_file"
}

// AlertInput is the body of POST /alerts and PUT /alerts/{id}. The json tags are the
// wire names; on create every tagged field must be present, on update any subset is merged.
type AlertInput struct {
	Date           payload.Field[string]  `json:"Date,omitzero" validate:"present"`
	UserID         payload.Field[string]  `json:"userId,omitzero" validate:"present"`
	Symbol         payload.Field[string]  `json:"Symbol,omitzero" validate:"present"`
	OrderNo        payload.Field[string]  `json:"Order No.,omitzero" validate:"present"`
	OrderStatus    payload.Field[string]  `json:"Order Status,omitzero" validate:"present"`
	Quantity       payload.Field[int64]   `json:"Quantity,omitzero" validate:"present"`
	BuyPrice       payload.Field[float64] `json:"Buy Price,omitzero" validate:"present"`
	LastTradePrice payload.Field[float64] `json:"Last Trade Price,omitzero" validate:"present"`
	ProfitLoss     payload.Field[float64] `json:"Profit/Loss,omitzero" validate:"present"`
	ProfitLossPct  payload.Field[float64] `json:"Profit/Loss %,omitzero" validate:"present"`
	OCOOrderNo     payload.Field[string]  `json:"OCO Order No.,omitzero"`
	OCOStatus      payload.Field[string]  `json:"OCO Status,omitzero"`
	OverallStatus  payload.Field[string]  `json:"Overall Status,omitzero" validate:"present"`
}

// NullColumns lists the NOT NULL columns the input would set to null.
func (in AlertInput) NullColumns() []string {
	return nullColumns(map[string]bool{
		"Date":                 in.Date.IsNull(),
		"user_id":              in.UserID.IsNull(),
		"Symbol":               in.Symbol.IsNull(),
		"OrderNo":              in.OrderNo.IsNull(),
		"OrderStatus":          in.OrderStatus.IsNull(),
		"Quantity":             in.Quantity.IsNull(),
		"BuyPrice":             in.BuyPrice.IsNull(),
		"LastTradePrice":       in.LastTradePrice.IsNull(),
		"ProfitLoss":           in.ProfitLoss.IsNull(),
		"ProfitLossPercentage": in.ProfitLossPct.IsNull(),
		"OverallStatus":        in.OverallStatus.IsNull(),
	})
}

// Apply merges the present fields of in over a.
func (in AlertInput) Apply(a *Alert) {
	in.Date.ApplyTo(&a.Date)
	in.UserID.ApplyTo(&a.UserID)
	in.Symbol.ApplyTo(&a.Symbol)
	in.OrderNo.ApplyTo(&a.OrderNo)
	in.OrderStatus.ApplyTo(&a.OrderStatus)
	in.Quantity.ApplyTo(&a.Quantity)
	in.BuyPrice.ApplyTo(&a.BuyPrice)
	in.LastTradePrice.ApplyTo(&a.LastTradePrice)
	in.ProfitLoss.ApplyTo(&a.ProfitLoss)
	in.ProfitLossPct.ApplyTo(&a.ProfitLossPct)
	in.OCOOrderNo.ApplyToPtr(&a.OCOOrderNo)
	in.OCOStatus.ApplyToPtr(&a.OCOStatus)
	in.OverallStatus.ApplyTo(&a.OverallStatus)
}
