package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Password  string         `json:"-" gorm:"not null"`
	FirstName string         `json:"firstName" gorm:"not null"`
	LastName  string         `json:"lastName" gorm:"not null"`
	Role      string         `json:"role" gorm:"not null;default:ADMIN"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Profile *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

type UserProfile struct {
	ID          uint           `json:"-" gorm:"primaryKey"`
	UserID      uint           `json:"-" gorm:"not null;uniqueIndex"`
	Bio         string         `json:"bio"`
	Avatar      string         `json:"avatar"`
	Location    string         `json:"location"`
	Occupation  string         `json:"occupation"`
	Company     string         `json:"company"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	Website     string         `json:"website"`
	GithubURL   string         `json:"githubUrl"`
	LinkedinURL string         `json:"linkedinUrl"`
	TwitterURL  string         `json:"twitterUrl"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
