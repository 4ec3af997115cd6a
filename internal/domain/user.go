package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleVendor   Role = "Vendor"
	RoleEmployee Role = "Employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleEmployee:
		return true
	}
	return false
}

type UserStatus string

const (
	UserPending  UserStatus = "Pending"
	UserApproved UserStatus = "Approved"
)

// InitialStatus is the status a freshly registered user of this role gets.
// Vendors wait for an admin; everybody else can log in straight away.
func (r Role) InitialStatus() UserStatus {
	if r == RoleVendor {
		return UserPending
	}
	return UserApproved
}

type User struct {
	ID           uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         Role       `json:"role" gorm:"size:16;not null;index"`
	Status       UserStatus `json:"status" gorm:"size:16;not null;default:'Pending';index"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
}
