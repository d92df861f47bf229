package models

import "time"

// User is a registered storefront account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"size:50;not null;default:''" json:"phone"`
	Address   string    `gorm:"size:255;not null" json:"address"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Role      Role      `gorm:"size:20;not null;default:client" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Sanitize blanks the password hash before the user leaves a service.
func (u *User) Sanitize() *User {
	if u != nil {
		u.Password = ""
	}
	return u
}
