package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers inserts an admin and a demo shopkeeper account. Existing
// emails are left alone so reseeding is safe.
func SeedUsers(db *gorm.DB) error {
	users := []models.User{
		{
			FirstName: "Admin",
			LastName:  "User",
			Email:     "admin@bhandar.local",
			Role:      "admin",
		},
		{
			FirstName:     "Kirana",
			LastName:      "Owner",
			Email:         "owner@bhandar.local",
			ContactNumber: "9800000000",
			Gender:        "other",
			Role:          "user",
		},
	}

	for _, u := range users {
		hashed, err := auth.HashPassword("password123")
		if err != nil {
			return err
		}
		u.Password = hashed

		var existing models.User
		err = db.Where("email = ?", u.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&u).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
