package repositories

import (
	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/pkg/orm"
)

// UserRepository reads and writes user accounts in the SQL database.
// Profile edits go through Update so gorm stamps UpdatedAt.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail resolves a login email to its account.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID loads one account by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create inserts a new account.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update saves every field of an existing account, profile image URL
// included.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// All returns one page of accounts.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().Model(&models.User{}).GetWithPagination(&users, page, limit)
	return users, pagination, err
}
