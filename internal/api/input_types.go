package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/goplanner/goplanner/internal/models"
	"github.com/goplanner/goplanner/internal/services"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPInput struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	GoogleID string `json:"googleId"`
	Picture  string `json:"picture"`
}

type resendVerificationInput struct {
	Email string `json:"email"`
}

type contactInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	IssueType string `json:"issueType"`
}

type itineraryGenerateInput struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

type tripActivityInput struct {
	ID          string           `json:"id"`
	Time        string           `json:"time"`
	Activity    string           `json:"activity"`
	Type        string           `json:"type"`
	Location    string           `json:"location"`
	Notes       string           `json:"notes"`
	Coordinates *models.GeoPoint `json:"coordinates"`
	Rating      string           `json:"rating"`
	Order       int              `json:"order"`
}

type tripDayInput struct {
	DayNumber  int                 `json:"dayNumber"`
	Date       string              `json:"date"`
	Activities []tripActivityInput `json:"activities"`
	Weather    map[string]any      `json:"weather"`
}

// tripInput deliberately has no owner or user field; ownership is taken from
// the authenticated caller and a payload carrying one fails strict decoding.
type tripInput struct {
	Destination string           `json:"destination"`
	StartDate   string           `json:"startDate"`
	EndDate     string           `json:"endDate"`
	Budget      string           `json:"budget"`
	Interests   []string         `json:"interests"`
	Itinerary   []tripDayInput   `json:"itinerary"`
	Coordinates *models.GeoPoint `json:"coordinates"`
	Status      string           `json:"status"`
	IsPublic    bool             `json:"isPublic"`
	SharedWith  []uint           `json:"sharedWith"`
}

// parseDate accepts the SPA's plain date form and full RFC 3339 timestamps.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return parsed, nil
}

func (input tripInput) toServiceInput() (services.TripInput, error) {
	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return services.TripInput{}, err
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return services.TripInput{}, err
	}

	days := make([]models.TripDay, 0, len(input.Itinerary))
	for _, day := range input.Itinerary {
		date, err := parseDate(day.Date)
		if err != nil {
			return services.TripInput{}, err
		}
		activities := make([]models.TripActivity, 0, len(day.Activities))
		for _, activity := range day.Activities {
			activities = append(activities, models.TripActivity{
				ID:          activity.ID,
				Time:        activity.Time,
				Activity:    activity.Activity,
				Type:        activity.Type,
				Location:    activity.Location,
				Notes:       activity.Notes,
				Coordinates: activity.Coordinates,
				Rating:      activity.Rating,
				Order:       activity.Order,
			})
		}
		days = append(days, models.TripDay{
			DayNumber:  day.DayNumber,
			Date:       date,
			Activities: activities,
			Weather:    day.Weather,
		})
	}

	return services.TripInput{
		Destination: input.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      input.Budget,
		Interests:   input.Interests,
		Itinerary:   days,
		Coordinates: input.Coordinates,
		Status:      input.Status,
		IsPublic:    input.IsPublic,
		SharedWith:  input.SharedWith,
	}, nil
}
