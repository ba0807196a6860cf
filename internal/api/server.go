package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/occurrence-registration-api/docs"
	v1 "github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1"
	"github.com/vietanh2810/occurrence-registration-api/internal/api/middleware"
	"github.com/vietanh2810/occurrence-registration-api/internal/config"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/eventbus"
	"github.com/vietanh2810/occurrence-registration-api/internal/mail"
	"github.com/vietanh2810/occurrence-registration-api/internal/occurrence"
	"github.com/vietanh2810/occurrence-registration-api/internal/payment"
	"github.com/vietanh2810/occurrence-registration-api/internal/repository"
	"github.com/vietanh2810/occurrence-registration-api/internal/repository/dao"
	"github.com/vietanh2810/occurrence-registration-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Feed   *v1.FeedHub
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	binding.EnableDecoderDisallowUnknownFields = true
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		Feed:   v1.NewFeedHub(conf.API.AllowedCORSDomains),
	}

	s.MountMiddlewares()

	bus := eventbus.New()
	bus.Subscribe(eventbus.AuditListener)
	bus.Subscribe(s.Feed.Deliver)

	registrationHandler, err := s.initRegistrationHandler(db, bus)
	if err != nil {
		return nil, err
	}
	s.MountHandlers(registrationHandler)

	go s.Feed.Run()

	return s, nil
}

func (s *Server) initRegistrationHandler(db *gorm.DB, bus *eventbus.Bus) (*v1.RegistrationHandler, error) {
	loc, err := s.Config.Registration.Location()
	if err != nil {
		return nil, fmt.Errorf("s.Config.Registration.Location -> %w", err)
	}
	resolver := occurrence.NewResolver(loc, time.Now)

	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	paymentRepo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))

	participantSvc := service.NewParticipantService(participantRepo)
	eligibility := service.NewAgeEligibility()

	paymentSvc := service.NewPaymentService(
		paymentRepo,
		participantRepo,
		payment.NewStripeGateway(s.Config.Stripe),
		mail.NewSMTPMailer(s.Config.Mail),
		s.Config.Stripe.Currency,
		domain.DeliveryMode(s.Config.Registration.DefaultDelivery),
	)

	svc := service.NewRegistrationService(
		eventRepo,
		registrationRepo,
		participantSvc,
		eligibility,
		paymentSvc,
		bus,
		resolver,
		service.RegistrationPolicy{
			AllowOngoingSeries: s.Config.Registration.AllowOngoingSeries,
			NoteMaxLength:      s.Config.Registration.NoteMaxLength,
		},
	)
	rSvc := service.NewReservationService(
		eventRepo,
		registrationRepo,
		participantRepo,
		participantSvc,
		participantSvc,
		eligibility,
		resolver,
	)

	return v1.NewRegistrationHandler(svc, rSvc), nil
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(registrationHandler *v1.RegistrationHandler) {
	const basePath = "/api/v1"

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.POST("/events/:eventID/registrations", registrationHandler.HandleRegister)
		authenticated.DELETE("/events/:eventID/registrations/:participantID", registrationHandler.HandleUnregister)
		authenticated.GET("/events/:eventID/reservations", registrationHandler.HandleListReservations)
		authenticated.GET("/events/:eventID/occurrences", registrationHandler.HandleListOccurrences)
		authenticated.GET("/events/:eventID/participants", registrationHandler.HandleListParticipants)
		authenticated.GET("/events/:eventID/feed", s.Feed.HandleFeed)

		authenticated.PATCH("/registrations/:registrationID", registrationHandler.HandleUpdateRegistration)
		authenticated.GET("/registrations/:registrationID/history", registrationHandler.HandleRegistrationHistory)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Occurrence registration API"
	docs.SwaggerInfo.Description = "Registration of members and their dependents to one-off and recurring events."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// Close stops the websocket feed. In-flight HTTP requests are not affected.
func (s *Server) Close() {
	s.Feed.Stop()
}
