package model

import (
	"time"
)

// LoginLog records a login or logout attempt
type LoginLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"column:user_id"`
	Username  string    `json:"username" gorm:"size:80"`
	Action    string    `json:"action" gorm:"size:20;not null"` // login, logout
	IP        string    `json:"ip" gorm:"size:50"`
	UserAgent string    `json:"user_agent" gorm:"column:user_agent;size:500"`
	Success   bool      `json:"success" gorm:"not null;default:true"`
	ErrorMsg  string    `json:"error_msg,omitempty" gorm:"column:error_msg;type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (LoginLog) TableName() string {
	return "login_logs"
}

// OperationLog records an admin mutation on a marker
type OperationLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"column:user_id"`
	Username  string    `json:"username" gorm:"size:80"`
	Action    string    `json:"action" gorm:"size:50"` // create, delete, shutdown, reactivate
	MarkerID  uint      `json:"marker_id" gorm:"column:marker_id"`
	IP        string    `json:"ip" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
}

func (OperationLog) TableName() string {
	return "operation_logs"
}
