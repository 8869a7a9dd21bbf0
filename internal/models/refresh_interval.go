package models

import "konnect-service-go/internal/payload"

// DefaultRefreshIntervalSeconds is reported when no interval has been configured.
const DefaultRefreshIntervalSeconds = 300

// RefreshInterval is the polling interval setting. Readers use the first row;
// interval_seconds is unique per row, not across the table as a singleton.
type RefreshInterval struct {
	ID              uint64 `gorm:"column:id;primaryKey" json:"id"`
	IntervalSeconds int64  `gorm:"column:interval_seconds;not null;unique" json:"interval_seconds"`
}

func (RefreshInterval) TableName() string {
	return "refresh_interval"
}

// RefreshIntervalInput is the body of POST /config/refresh-intervals and PUT /config/refresh-intervals/{id}.
type RefreshIntervalInput struct {
	IntervalSeconds payload.Field[int64] `json:"interval_seconds,omitzero" validate:"required"`
}
