package db

import (
	"errors"
	"strings"

	"github.com/goplanner/goplanner/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, translateLookupError(err)
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, translateLookupError(err)
	}
	return user, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	if err := repo.database.Create(user).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (repo *UserRepository) Save(user *models.User) error {
	if err := repo.database.Save(user).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (repo *UserRepository) DeleteByID(userID uint) error {
	return repo.database.Delete(&models.User{}, userID).Error
}

// DeleteAccountAndTrips removes the account and everything it owns as one
// transaction, dependents first, so a failed trip delete never strands an
// ownerless record.
func (repo *UserRepository) DeleteAccountAndTrips(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Trip{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// ListSummariesByIDs loads the public projection of the given users. Missing
// IDs are silently absent from the result.
func (repo *UserRepository) ListSummariesByIDs(userIDs []uint) ([]models.OwnerSummary, error) {
	if len(userIDs) == 0 {
		return []models.OwnerSummary{}, nil
	}
	summaries := make([]models.OwnerSummary, 0, len(userIDs))
	if err := repo.database.Model(&models.User{}).
		Select("id", "name", "email").
		Where("id IN ?", userIDs).
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func translateLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return models.ErrDuplicateEmail
	}
	return err
}
