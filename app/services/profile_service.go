package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/pkg/storage"
	"github.com/shashiranjanraj/bhandar/pkg/validate"
)

// ProfileService edits user profiles and their avatar images.
type ProfileService struct {
	users *repositories.UserRepository
}

func NewProfileService(users *repositories.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Get returns the profile of one user.
func (s *ProfileService) Get(id uint) (models.User, error) {
	return s.users.FindByID(id)
}

// Update applies a partial profile edit and, when avatar is non-nil,
// stores the new image and persists its URL. Unset fields keep their
// stored values.
func (s *ProfileService) Update(id uint, update models.ProfileUpdate, avatar multipart.File, header *multipart.FileHeader) (models.User, map[string]string, error) {
	if errs := validate.Struct(&update); validate.HasErrors(errs) {
		return models.User{}, errs, nil
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("profile: load user %d: %w", id, err)
	}

	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.ContactNumber != nil {
		user.ContactNumber = strings.TrimSpace(*update.ContactNumber)
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}

	if avatar != nil {
		url, err := s.storeAvatar(id, avatar, header)
		if err != nil {
			return models.User{}, nil, err
		}
		user.ProfileImage = url
	}

	if err := s.users.Update(&user); err != nil {
		return models.User{}, nil, fmt.Errorf("profile: save user %d: %w", id, err)
	}
	return user, nil, nil
}

// storeAvatar writes the upload under avatars/ with a random filename so
// concurrent uploads never clobber each other.
func (s *ProfileService) storeAvatar(id uint, f multipart.File, header *multipart.FileHeader) (string, error) {
	ext := ".png"
	if header != nil {
		if e := strings.ToLower(filepath.Ext(header.Filename)); e != "" {
			ext = e
		}
	}

	path := fmt.Sprintf("avatars/%d-%s%s", id, uuid.NewString(), ext)
	if err := storage.PutStream(path, f); err != nil {
		return "", fmt.Errorf("profile: store avatar: %w", err)
	}
	return storage.URL(path), nil
}
