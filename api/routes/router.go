package routes

import (
	"net/http"
	"time"

	"reserva/internal/events"
	"reserva/internal/identity"
	"reserva/internal/payments"
	"reserva/internal/requesters"
	"reserva/internal/reservations"
	"reserva/internal/shared/config"
	"reserva/internal/shared/database"
	"reserva/internal/venues"
	"reserva/pkg/cache"
	"reserva/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	log      *logger.Logger
	cache    cache.Service
	notifier Notifier

	venueRepo     venues.Repository
	requesterRepo requesters.Repository

	// Exposed so the sweeper can share the reservation service
	reservationService reservations.Service
}

// Notifier publishes lifecycle events for reservations and settlements.
// Nil when Kafka is disabled.
type Notifier interface {
	reservations.Notifier
	payments.Notifier
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger) *Router {
	return &Router{
		config: cfg,
		db:     db,
		log:    log,
	}
}

// SetCache wires the optional Redis-backed read cache
func (r *Router) SetCache(c cache.Service) {
	r.cache = c
}

// SetNotifier wires the optional Kafka producer
func (r *Router) SetNotifier(n Notifier) {
	r.notifier = n
}

// ReservationService returns the reservation service built during
// SetupRoutes. Nil before SetupRoutes runs.
func (r *Router) ReservationService() reservations.Service {
	return r.reservationService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Venue routes first: the venue repository is shared with events
		r.setupVenueRoutes(api)
		r.setupEventRoutes(api)
		r.setupIdentityRoutes(api)
		r.setupReservationRoutes(api)
		r.setupPaymentRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "reserva-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "reserva-api",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	r.venueRepo = venues.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(r.venueRepo)
	venueController := venues.NewController(venueService)

	venues.SetupVenueRoutes(rg, venueController)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo, r.venueRepo)

	if r.cache != nil {
		eventService.SetCache(r.cache, r.config.Redis.AvailabilityTTL, r.config.Redis.EventListTTL)
	}

	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)
}

func (r *Router) setupIdentityRoutes(rg *gin.RouterGroup) {
	r.requesterRepo = requesters.NewRepository(r.db.GetPostgreSQL())
	identityService := identity.NewService(r.requesterRepo, r.config.Identity)
	identityController := identity.NewController(identityService)

	identity.SetupIdentityRoutes(rg, identityController)
}

func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	reservationRepo := reservations.NewRepository(r.db.GetPostgreSQL())
	r.reservationService = reservations.NewService(
		reservationRepo,
		r.notifier,
		r.log,
		r.config.Reservation.PaymentWindow,
	)
	reservationController := reservations.NewController(r.reservationService)

	reservations.SetupReservationRoutes(rg, reservationController)
}

func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	paymentService := payments.NewService(paymentRepo, r.notifier, r.log)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController)
}
