package api

import (
	"time"

	"github.com/goplanner/goplanner/internal/db"
	"github.com/goplanner/goplanner/internal/metrics"
	"github.com/goplanner/goplanner/internal/services"
	"gorm.io/gorm"
)

const (
	defaultTokenTTL = 7 * 24 * time.Hour

	contextUserKey = "currentUser"
)

// NotificationDispatcher is everything the handler's services need to send.
type NotificationDispatcher interface {
	services.VerificationDispatcher
	services.ContactDispatcher
}

type HandlerOptions struct {
	SecretKey           string
	TokenTTL            time.Duration
	OTPTTL              time.Duration
	Location            *time.Location
	Dispatcher          NotificationDispatcher
	ItineraryServiceURL string
	Metrics             *metrics.Collector
	AuthRatePerMinute   int
	AuthRateBurst       int
}

type Handler struct {
	secretKey []byte
	tokenTTL  time.Duration
	location  *time.Location
	metrics   *metrics.Collector

	authService      *services.AuthService
	tripService      *services.TripService
	contactService   *services.ContactService
	itineraryService *services.ItineraryService

	authLimiter *ipRateLimiter
}

func NewHandler(database *gorm.DB, options HandlerOptions) *Handler {
	if options.TokenTTL <= 0 {
		options.TokenTTL = defaultTokenTTL
	}
	if options.Location == nil {
		options.Location = time.UTC
	}

	dispatcher := instrumentDispatcher(options.Dispatcher, options.Metrics)

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:        []byte(options.SecretKey),
		tokenTTL:         options.TokenTTL,
		location:         options.Location,
		metrics:          options.Metrics,
		authService:      services.NewAuthService(repositories.Users, dispatcher, options.OTPTTL),
		tripService:      services.NewTripService(repositories.Trips, repositories.Users),
		contactService:   services.NewContactService(dispatcher),
		itineraryService: services.NewItineraryService(options.ItineraryServiceURL),
		authLimiter:      newIPRateLimiter(options.AuthRatePerMinute, options.AuthRateBurst),
	}
}
