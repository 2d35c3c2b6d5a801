package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goplanner/goplanner/internal/models"
	"github.com/google/uuid"
)

const (
	maxItineraryDays        = 14
	itineraryRequestTimeout = 30 * time.Second
)

type ItineraryRequest struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      string
	Interests   []string
}

type ItineraryPlan struct {
	Destination string           `json:"destination"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	Budget      string           `json:"budget"`
	Interests   []string         `json:"interests"`
	Itinerary   []models.TripDay `json:"itinerary"`
}

// ItineraryService is a thin façade over an external generation service.
// Without a configured endpoint it falls back to a deterministic local
// builder so the endpoint stays usable offline.
type ItineraryService struct {
	endpoint string
	client   *http.Client
}

func NewItineraryService(endpoint string) *ItineraryService {
	return &ItineraryService{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: itineraryRequestTimeout},
	}
}

func (service *ItineraryService) Generate(ctx context.Context, request ItineraryRequest) (ItineraryPlan, error) {
	request.Destination = strings.TrimSpace(request.Destination)
	if request.Destination == "" || request.StartDate.IsZero() || request.EndDate.IsZero() {
		return ItineraryPlan{}, validationf("destination, start date and end date are required")
	}
	if request.EndDate.Before(request.StartDate) {
		return ItineraryPlan{}, validationf("end date must not be before start date")
	}
	request.Budget = NormalizeBudget(request.Budget)
	if request.Interests == nil {
		request.Interests = []string{}
	}

	if service.endpoint == "" {
		return service.buildFallback(request), nil
	}
	return service.callRemote(ctx, request)
}

type remoteItineraryRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

type remoteItineraryResponse struct {
	Itinerary []models.TripDay `json:"itinerary"`
}

func (service *ItineraryService) callRemote(ctx context.Context, request ItineraryRequest) (ItineraryPlan, error) {
	payload, err := json.Marshal(remoteItineraryRequest{
		Destination: request.Destination,
		StartDate:   request.StartDate.Format("2006-01-02"),
		EndDate:     request.EndDate.Format("2006-01-02"),
		Budget:      request.Budget,
		Interests:   request.Interests,
	})
	if err != nil {
		return ItineraryPlan{}, err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, service.endpoint, bytes.NewReader(payload))
	if err != nil {
		return ItineraryPlan{}, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	response, err := service.client.Do(httpRequest)
	if err != nil {
		return ItineraryPlan{}, fmt.Errorf("itinerary service request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ItineraryPlan{}, fmt.Errorf("itinerary service returned status %d", response.StatusCode)
	}

	decoded := remoteItineraryResponse{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return ItineraryPlan{}, fmt.Errorf("decode itinerary service response: %w", err)
	}
	if len(decoded.Itinerary) == 0 {
		return ItineraryPlan{}, fmt.Errorf("itinerary service returned an empty plan")
	}

	return ItineraryPlan{
		Destination: request.Destination,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Budget:      request.Budget,
		Interests:   request.Interests,
		Itinerary:   decoded.Itinerary,
	}, nil
}

// interest tags mapped onto activity categories for the offline builder.
var interestActivityTypes = map[string]string{
	"food":      models.ActivityDining,
	"dining":    models.ActivityDining,
	"culture":   models.ActivitySightseeing,
	"history":   models.ActivitySightseeing,
	"nature":    models.ActivityAdventure,
	"adventure": models.ActivityAdventure,
	"outdoors":  models.ActivityAdventure,
}

func (service *ItineraryService) buildFallback(request ItineraryRequest) ItineraryPlan {
	activityTypes := []string{models.ActivitySightseeing, models.ActivityDining}
	for _, interest := range request.Interests {
		if activityType, ok := interestActivityTypes[strings.ToLower(strings.TrimSpace(interest))]; ok {
			activityTypes = append(activityTypes, activityType)
		}
	}

	dayCount := int(request.EndDate.Sub(request.StartDate).Hours()/24) + 1
	if dayCount > maxItineraryDays {
		dayCount = maxItineraryDays
	}

	slots := []struct {
		time  string
		title string
	}{
		{"09:00", "Morning in %s"},
		{"13:00", "Afternoon in %s"},
		{"18:00", "Evening in %s"},
	}

	days := make([]models.TripDay, 0, dayCount)
	for dayIndex := 0; dayIndex < dayCount; dayIndex++ {
		date := request.StartDate.AddDate(0, 0, dayIndex)
		activities := make([]models.TripActivity, 0, len(slots))
		for slotIndex, slot := range slots {
			activities = append(activities, models.TripActivity{
				ID:       uuid.NewString(),
				Time:     slot.time,
				Activity: fmt.Sprintf(slot.title, request.Destination),
				Type:     activityTypes[(dayIndex+slotIndex)%len(activityTypes)],
				Location: request.Destination,
				Order:    slotIndex + 1,
			})
		}
		days = append(days, models.TripDay{
			DayNumber:  dayIndex + 1,
			Date:       date,
			Activities: activities,
		})
	}

	return ItineraryPlan{
		Destination: request.Destination,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Budget:      request.Budget,
		Interests:   request.Interests,
		Itinerary:   days,
	}
}
