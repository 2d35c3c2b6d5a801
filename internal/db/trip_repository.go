package db

import (
	"strings"

	"github.com/goplanner/goplanner/internal/models"
	"gorm.io/gorm"
)

type TripRepository struct {
	database *gorm.DB
}

func NewTripRepository(database *gorm.DB) *TripRepository {
	return &TripRepository{database: database}
}

func (repo *TripRepository) Create(trip *models.Trip) error {
	return repo.database.Create(trip).Error
}

// FindByIDAndOwner folds the ownership check into the lookup predicate, so
// someone else's trip is indistinguishable from a missing one.
func (repo *TripRepository) FindByIDAndOwner(tripID uint, ownerID uint) (models.Trip, error) {
	var trip models.Trip
	err := repo.database.
		Where("id = ? AND user_id = ?", tripID, ownerID).
		First(&trip).Error
	if err != nil {
		return models.Trip{}, translateLookupError(err)
	}
	return trip, nil
}

func (repo *TripRepository) ListByOwner(ownerID uint, status string, offset int, limit int) ([]models.Trip, int64, error) {
	query := repo.database.Model(&models.Trip{}).Where("user_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	trips := make([]models.Trip, 0)
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func (repo *TripRepository) Save(trip *models.Trip) error {
	return repo.database.Save(trip).Error
}

func (repo *TripRepository) DeleteByIDAndOwner(tripID uint, ownerID uint) error {
	result := repo.database.
		Where("id = ? AND user_id = ?", tripID, ownerID).
		Delete(&models.Trip{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListPublic returns public trips regardless of owner, newest first, with an
// optional case-insensitive destination substring filter. instr avoids LIKE
// wildcard semantics for client-supplied needles.
func (repo *TripRepository) ListPublic(destination string, offset int, limit int) ([]models.Trip, int64, error) {
	query := repo.database.Model(&models.Trip{}).Where("is_public = ?", true)
	if destination != "" {
		query = query.Where("instr(lower(destination), ?) > 0", strings.ToLower(destination))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	trips := make([]models.Trip, 0)
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}
