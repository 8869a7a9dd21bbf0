package models

import "konnect-service-go/internal/payload"

// User is a broker account holder. UserID is supplied by the caller and never changes.
type User struct {
	UserID      string `gorm:"column:user_id;primaryKey;size:100" json:"userId"`
	Username    string `gorm:"column:username;size:100;not null;unique" json:"username"`
	Stockbroker string `gorm:"column:stockbroker;size:100;not null" json:"stockbroker"`
}

func (User) TableName() string {
	return "user"
}

// UserInput is the body of POST /users and PUT /users/{userId}.
// On update UserID is ignored.
type UserInput struct {
	UserID      payload.Field[string] `json:"userId,omitzero" validate:"required"`
	Username    payload.Field[string] `json:"username,omitzero" validate:"required"`
	Stockbroker payload.Field[string] `json:"stockbroker,omitzero" validate:"required"`
}
