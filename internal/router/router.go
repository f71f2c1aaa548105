package router

import (
	"time"

	"homehub/config"
	"homehub/internal/domain"
	"homehub/internal/handler"
	"homehub/internal/middleware"
	"homehub/internal/repository"
	"homehub/internal/service"
	"homehub/internal/ws"
	"homehub/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, provider payment.Provider) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	supportRepo := repository.NewSupportRepository(db)

	supportHub := ws.NewSupportHub()

	// Services
	notifSvc := service.NewNotificationService(notificationRepo)
	bookingSvc := service.NewBookingService(bookingRepo, houseRepo, paymentRepo, notifSvc)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo, provider, cfg.Daraja.CallbackBaseURL)
	reconcileSvc := service.NewReconcileService(db, notifSvc)

	// Handlers
	meHandler := handler.NewMeHandler(userRepo)
	houseHandler := handler.NewHouseHandler(houseRepo)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	mpesaWebhookHandler := handler.NewMpesaWebhookHandler(reconcileSvc)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceRepo, houseRepo, notifSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	serviceHandler := handler.NewServiceHandler(serviceRepo, notifSvc)
	supportHandler := handler.NewSupportHandler(supportRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	tenantOnly := middleware.RequireRole(domain.RoleTenant)
	landlordOnly := middleware.RequireRole(domain.RoleLandlord)
	agentOnly := middleware.RequireRole(domain.RoleSupportAgent)

	api := r.Group("/api/v1")
	{
		api.GET("/me", authMw, meHandler.GetProfile)
		api.PATCH("/me", authMw, meHandler.UpdateProfile)

		// Listings: browse is public, management is landlord-scoped.
		api.GET("/houses", houseHandler.List)
		api.GET("/houses/:id", houseHandler.Get)
		api.GET("/houses/:id/payment-methods", houseHandler.GetPaymentMethods)

		houses := api.Group("/houses")
		houses.Use(authMw, landlordOnly)
		{
			houses.POST("", houseHandler.Create)
			houses.PUT("/:id", houseHandler.Update)
			houses.PATCH("/:id/availability", houseHandler.SetAvailability)
			houses.PUT("/:id/payment-methods", houseHandler.UpsertPaymentMethods)
		}
		api.GET("/my/houses", authMw, landlordOnly, houseHandler.ListMine)

		// Booking lifecycle.
		api.POST("/houses/:id/bookings", authMw, tenantOnly, bookingHandler.Create)
		api.GET("/bookings/:id", authMw, bookingHandler.Get)
		api.GET("/my/bookings", authMw, tenantOnly, bookingHandler.ListMine)
		api.GET("/landlord/bookings", authMw, landlordOnly, bookingHandler.ListForLandlord)
		api.POST("/bookings/:id/approve", authMw, landlordOnly, bookingHandler.Approve)
		api.POST("/bookings/:id/reject", authMw, landlordOnly, bookingHandler.Reject)
		api.POST("/bookings/:id/activate", authMw, landlordOnly, bookingHandler.Activate)
		api.POST("/bookings/:id/cancel", authMw, bookingHandler.Cancel)
		api.POST("/bookings/:id/move-out", authMw, tenantOnly, bookingHandler.RequestMoveOut)

		// Payments.
		api.POST("/payments/mpesa/initiate", authMw, tenantOnly, paymentHandler.Initiate)
		api.GET("/payments/:id/status", authMw, tenantOnly, paymentHandler.Status)
		api.GET("/my/payments", authMw, tenantOnly, paymentHandler.ListMine)
		api.GET("/landlord/payments", authMw, landlordOnly, paymentHandler.ListForLandlord)

		// Maintenance.
		api.POST("/maintenance", authMw, tenantOnly, maintenanceHandler.Create)
		api.GET("/my/maintenance", authMw, tenantOnly, maintenanceHandler.ListMine)
		api.GET("/landlord/maintenance", authMw, landlordOnly, maintenanceHandler.ListForLandlord)
		api.PATCH("/maintenance/:id/status", authMw, landlordOnly, maintenanceHandler.UpdateStatus)

		// Notifications.
		api.GET("/notifications", authMw, notificationHandler.List)
		api.PUT("/notifications/:id/read", authMw, notificationHandler.MarkRead)

		// Local services marketplace.
		api.GET("/services/providers", authMw, serviceHandler.ListProviders)
		api.PUT("/services/profile", authMw, middleware.RequireRole(domain.RoleServiceProvider), serviceHandler.UpsertProfile)
		api.POST("/services/requests", authMw, tenantOnly, serviceHandler.CreateRequest)
		api.GET("/my/service-requests", authMw, tenantOnly, serviceHandler.ListMyRequests)
		api.GET("/services/assigned", authMw, middleware.RequireRole(domain.RoleServiceProvider), serviceHandler.ListAssignedRequests)
		api.PATCH("/services/requests/:id/status", authMw, middleware.RequireRole(domain.RoleServiceProvider), serviceHandler.UpdateRequestStatus)

		// Support.
		api.POST("/support/tickets", authMw, supportHandler.CreateTicket)
		api.GET("/my/support/tickets", authMw, supportHandler.ListMyTickets)
		api.GET("/support/tickets/open", authMw, agentOnly, supportHandler.ListOpenTickets)
		api.PATCH("/support/tickets/:id/status", authMw, agentOnly, supportHandler.UpdateTicketStatus)
		api.GET("/support/conversation", authMw, supportHandler.Conversation)

		// Gateway callback. Unauthenticated: Daraja does not sign callbacks,
		// correlation is by CheckoutRequestID only.
		api.POST("/webhooks/mpesa", mpesaWebhookHandler.Handle)
	}

	r.GET("/ws/support", handler.UpgradeSupportWS(&cfg.JWT, supportHub, supportRepo))

	return r
}
