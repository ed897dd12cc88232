package models

import (
	"time"
)

// Staff roles accepted in access tokens
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// StaffMember owns delivery integrations and gives their tokens a role
type StaffMember struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Name      string
	Role      string `gorm:"default:'staff'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StaffMember) TableName() string {
	return "staff_members"
}
