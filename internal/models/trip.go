package models

import "time"

const (
	TripStatusDraft     = "draft"
	TripStatusPlanned   = "planned"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

const (
	ActivitySightseeing   = "sightseeing"
	ActivityDining        = "dining"
	ActivityAccommodation = "accommodation"
	ActivityAdventure     = "adventure"
	ActivityTransport     = "transport"
)

// ValidTripStatus reports whether the given status is one of the closed set.
func ValidTripStatus(status string) bool {
	switch status {
	case TripStatusDraft, TripStatusPlanned, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// ValidActivityType reports whether the given type is one of the closed set.
func ValidActivityType(activityType string) bool {
	switch activityType {
	case ActivitySightseeing, ActivityDining, ActivityAccommodation, ActivityAdventure, ActivityTransport:
		return true
	}
	return false
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TripActivity is one scheduled item inside a day. The ID is assigned
// server-side and stays stable across edits so the client can reorder
// without losing identity.
type TripActivity struct {
	ID          string    `json:"id"`
	Time        string    `json:"time"`
	Activity    string    `json:"activity"`
	Type        string    `json:"type"`
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
	Rating      string    `json:"rating,omitempty"`
	Order       int       `json:"order"`
}

// TripDay is one calendar day of an itinerary. Weather is an opaque snapshot
// captured at generation time; the server never interprets it.
type TripDay struct {
	DayNumber  int            `json:"dayNumber"`
	Date       time.Time      `json:"date"`
	Activities []TripActivity `json:"activities"`
	Weather    map[string]any `json:"weather,omitempty"`
}

// Trip is one itinerary plan, strictly owned by one user. UserID is always
// set from the authenticated caller, never from request input. Budget is
// always one of the canonical tier strings after normalization.
type Trip struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_trips_user_created" json:"userId"`
	Destination string    `gorm:"not null" json:"destination"`
	StartDate   time.Time `gorm:"not null" json:"startDate"`
	EndDate     time.Time `gorm:"not null" json:"endDate"`
	Budget      string    `gorm:"not null" json:"budget"`
	Interests   []string  `gorm:"serializer:json" json:"interests"`
	Itinerary   []TripDay `gorm:"serializer:json" json:"itinerary"`
	Coordinates *GeoPoint `gorm:"serializer:json" json:"coordinates,omitempty"`
	Status      string    `gorm:"not null;default:draft" json:"status"`
	IsPublic    bool      `gorm:"not null;default:false" json:"isPublic"`
	SharedWith  []uint    `gorm:"serializer:json" json:"sharedWith"`
	CreatedAt   time.Time `gorm:"index:idx_trips_user_created" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
