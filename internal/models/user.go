package models

import "time"

// UserModel represents an account that owns topics and subscriptions.
// There is no credential material; identity is external to this service.
type UserModel struct {
	Base
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Name      string     `json:"name"`
	LastLogin *time.Time `json:"last_login"`
}

func (UserModel) TableName() string { return "users" }
