package models

import "gorm.io/gorm"

// User is an account with its editable profile fields.
type User struct {
	gorm.Model
	FirstName     string `gorm:"size:100"                      json:"firstName"`
	LastName      string `gorm:"size:100"                      json:"lastName"`
	Email         string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password      string `gorm:"size:255;not null"             json:"-"` // hashed, never serialised
	ContactNumber string `gorm:"size:30"                       json:"contactNumber"`
	Gender        string `gorm:"size:10"                       json:"gender"`
	ProfileImage  string `gorm:"size:500"                      json:"profileImage"`
	Role          string `gorm:"size:50;default:user"          json:"role"`
}

// ProfileUpdate carries a partial profile edit. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	FirstName     *string `json:"firstName"     validate:"nullable,max=100"`
	LastName      *string `json:"lastName"      validate:"nullable,max=100"`
	ContactNumber *string `json:"contactNumber" validate:"nullable,max=30"`
	Gender        *string `json:"gender"        validate:"nullable,in=male,female,other"`
}
