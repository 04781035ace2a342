package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the login handle.
	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Fname string `gorm:"size:100" json:"fname"`
	Mname string `gorm:"size:100" json:"mname"`
	Lname string `gorm:"size:100" json:"lname"`

	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Number  string `gorm:"size:20;index" json:"number"`
	Address string `gorm:"size:500" json:"address"`

	Password   string `gorm:"size:255;not null" json:"-"`
	UserType   string `gorm:"size:20;default:'client';index" json:"user_type"`
	ProfilePic string `gorm:"size:255" json:"profile_pic"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return joinNonEmpty(u.Fname, u.Mname, u.Lname)
}
