package services

import (
	"errors"
	"strings"
	"time"

	"github.com/goplanner/goplanner/internal/models"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type TripRepository interface {
	Create(trip *models.Trip) error
	FindByIDAndOwner(tripID uint, ownerID uint) (models.Trip, error)
	ListByOwner(ownerID uint, status string, offset int, limit int) ([]models.Trip, int64, error)
	Save(trip *models.Trip) error
	DeleteByIDAndOwner(tripID uint, ownerID uint) error
	ListPublic(destination string, offset int, limit int) ([]models.Trip, int64, error)
}

type TripOwnerLookup interface {
	ListSummariesByIDs(userIDs []uint) ([]models.OwnerSummary, error)
}

// TripInput is the full set of caller-editable trip fields. There is no
// owner field here: ownership comes from the authenticated identity alone.
type TripInput struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      string
	Interests   []string
	Itinerary   []models.TripDay
	Coordinates *models.GeoPoint
	Status      string
	IsPublic    bool
	SharedWith  []uint
}

// PublicTrip pairs a public trip with the minimal projection of its owner.
type PublicTrip struct {
	models.Trip
	Owner models.OwnerSummary `json:"user"`
}

// TripService owns trip CRUD. Every lookup and mutation is scoped by owner,
// and the budget tier is re-normalized on every persistence, not just at the
// API boundary.
type TripService struct {
	trips  TripRepository
	owners TripOwnerLookup
}

func NewTripService(trips TripRepository, owners TripOwnerLookup) *TripService {
	return &TripService{trips: trips, owners: owners}
}

func (service *TripService) CreateTrip(ownerID uint, input TripInput) (models.Trip, error) {
	trip := models.Trip{UserID: ownerID}
	if err := applyTripInput(&trip, input); err != nil {
		return models.Trip{}, err
	}
	if err := service.trips.Create(&trip); err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}

func (service *TripService) GetMyTrips(ownerID uint, status string, page int, pageSize int) ([]models.Trip, int64, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.ValidTripStatus(status) {
		return nil, 0, validationf("unknown trip status %q", status)
	}
	offset, limit := normalizePage(page, pageSize)
	return service.trips.ListByOwner(ownerID, status, offset, limit)
}

func (service *TripService) GetTrip(ownerID uint, tripID uint) (models.Trip, error) {
	trip, err := service.trips.FindByIDAndOwner(tripID, ownerID)
	if err != nil {
		return models.Trip{}, translateTripError(err)
	}
	return trip, nil
}

func (service *TripService) UpdateTrip(ownerID uint, tripID uint, input TripInput) (models.Trip, error) {
	trip, err := service.trips.FindByIDAndOwner(tripID, ownerID)
	if err != nil {
		return models.Trip{}, translateTripError(err)
	}
	if err := applyTripInput(&trip, input); err != nil {
		return models.Trip{}, err
	}
	if err := service.trips.Save(&trip); err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}

func (service *TripService) DeleteTrip(ownerID uint, tripID uint) error {
	return translateTripError(service.trips.DeleteByIDAndOwner(tripID, ownerID))
}

func (service *TripService) GetPublicTrips(destination string, page int, pageSize int) ([]PublicTrip, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	trips, total, err := service.trips.ListPublic(strings.TrimSpace(destination), offset, limit)
	if err != nil {
		return nil, 0, err
	}

	ownerIDs := make([]uint, 0, len(trips))
	seen := make(map[uint]struct{}, len(trips))
	for _, trip := range trips {
		if _, ok := seen[trip.UserID]; ok {
			continue
		}
		seen[trip.UserID] = struct{}{}
		ownerIDs = append(ownerIDs, trip.UserID)
	}

	summaries, err := service.owners.ListSummariesByIDs(ownerIDs)
	if err != nil {
		return nil, 0, err
	}
	ownersByID := make(map[uint]models.OwnerSummary, len(summaries))
	for _, summary := range summaries {
		ownersByID[summary.ID] = summary
	}

	public := make([]PublicTrip, 0, len(trips))
	for _, trip := range trips {
		public = append(public, PublicTrip{Trip: trip, Owner: ownersByID[trip.UserID]})
	}
	return public, total, nil
}

// applyTripInput validates the input, normalizes the closed enumerations and
// copies the editable fields onto the trip. The owner field is deliberately
// untouched.
func applyTripInput(trip *models.Trip, input TripInput) error {
	destination := strings.TrimSpace(input.Destination)
	if destination == "" {
		return validationf("destination is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return validationf("start date and end date are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return validationf("end date must not be before start date")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.TripStatusDraft
	}
	if !models.ValidTripStatus(status) {
		return validationf("unknown trip status %q", status)
	}

	itinerary, err := normalizeItinerary(input.Itinerary)
	if err != nil {
		return err
	}

	trip.Destination = destination
	trip.StartDate = input.StartDate
	trip.EndDate = input.EndDate
	trip.Budget = NormalizeBudget(input.Budget)
	trip.Interests = emptyIfNilStrings(input.Interests)
	trip.Itinerary = itinerary
	trip.Coordinates = input.Coordinates
	trip.Status = status
	trip.IsPublic = input.IsPublic
	trip.SharedWith = emptyIfNilIDs(input.SharedWith)
	return nil
}

// normalizeItinerary assigns stable IDs to new activities, defaults the
// activity type and display order, and rejects values outside the closed
// category set.
func normalizeItinerary(days []models.TripDay) ([]models.TripDay, error) {
	normalized := make([]models.TripDay, 0, len(days))
	for dayIndex, day := range days {
		if day.DayNumber <= 0 {
			day.DayNumber = dayIndex + 1
		}
		activities := make([]models.TripActivity, 0, len(day.Activities))
		for _, activity := range day.Activities {
			if strings.TrimSpace(activity.Activity) == "" {
				return nil, validationf("day %d has an activity without a title", day.DayNumber)
			}
			if activity.ID == "" {
				activity.ID = uuid.NewString()
			}
			if activity.Type == "" {
				activity.Type = models.ActivitySightseeing
			}
			if !models.ValidActivityType(activity.Type) {
				return nil, validationf("unknown activity type %q", activity.Type)
			}
			if activity.Order <= 0 {
				activity.Order = 1
			}
			activities = append(activities, activity)
		}
		day.Activities = activities
		normalized = append(normalized, day)
	}
	return normalized, nil
}

func normalizePage(page int, pageSize int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return (page - 1) * pageSize, pageSize
}

func translateTripError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func emptyIfNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyIfNilIDs(values []uint) []uint {
	if values == nil {
		return []uint{}
	}
	return values
}
