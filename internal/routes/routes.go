package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	"github.com/BohemiaEstudio/salon-scheduler/internal/config"
	"github.com/BohemiaEstudio/salon-scheduler/internal/handlers"
	infraRepo "github.com/BohemiaEstudio/salon-scheduler/internal/infra/repository"
	"github.com/BohemiaEstudio/salon-scheduler/internal/middleware"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
	ucScheduling "github.com/BohemiaEstudio/salon-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	policyStore := policy.NewStore(schedulingRepo)
	if err := policyStore.Load(context.Background()); err != nil {
		log.Fatalf("failed to load policy: %v", err)
	}

	var sender notify.Sender = notify.NoopSender{}
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	notifier := notify.NewDispatcher(db, sender)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	optimizer := ucScheduling.NewOptimizer(schedulingRepo, sender)

	// ======================================================
	// USE CASES
	// ======================================================
	sweepUC := ucScheduling.NewSweepExpired(schedulingRepo, notifier)

	availabilityUC := ucScheduling.NewGetAvailability(schedulingRepo, policyStore, sweepUC)
	calendarUC := ucScheduling.NewAvailabilityCalendar(schedulingRepo, policyStore)

	createUC := ucScheduling.NewCreateAppointment(schedulingRepo, policyStore, notifier, auditDispatcher)
	approveUC := ucScheduling.NewApproveAppointment(schedulingRepo, policyStore, notifier, auditDispatcher)
	confirmUC := ucScheduling.NewConfirmPayment(schedulingRepo, notifier, auditDispatcher)
	reprogramUC := ucScheduling.NewReprogramAppointment(schedulingRepo, policyStore, notifier, auditDispatcher)
	cancelUC := ucScheduling.NewCancelAppointment(schedulingRepo, policyStore, optimizer, notifier, auditDispatcher)
	completeUC := ucScheduling.NewCompleteAppointment(schedulingRepo, notifier, notify.LogFollowUp{}, auditDispatcher)
	noShowUC := ucScheduling.NewMarkNoShow(schedulingRepo, notifier, auditDispatcher)
	acceptOfferUC := ucScheduling.NewAcceptOffer(schedulingRepo, policyStore, notifier, auditDispatcher)
	listUC := ucScheduling.NewListAppointments(schedulingRepo, sweepUC)

	joinWaitlistUC := ucScheduling.NewJoinWaitlist(schedulingRepo)
	statsUC := ucScheduling.NewDashboardStats(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, calendarUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		approveUC,
		confirmUC,
		reprogramUC,
		cancelUC,
		completeUC,
		noShowUC,
		acceptOfferUC,
		listUC,
	)
	waitlistHandler := handlers.NewWaitlistHandler(db, joinWaitlistUC)
	notificationHandler := handlers.NewNotificationHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	scheduleBlockHandler := handlers.NewScheduleBlockHandler(db)
	resourceHandler := handlers.NewResourceHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	policyHandler := handlers.NewPolicyHandler(schedulingRepo, policyStore, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(db, statsUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", serviceHandler.ListPublic)
			publicAPI.GET("/availability", availabilityHandler.Get)
			publicAPI.GET("/availability/calendar", availabilityHandler.Calendar)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/notifications", notificationHandler.ListMine)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// CLIENTE
			// ------------------------------
			client := secured.Group("/")
			client.Use(middleware.RequireRole("client"))
			{
				client.POST("/me/appointments", appointmentHandler.Create)
				client.GET("/me/appointments", appointmentHandler.ListMine)
				client.POST("/me/offers/:token/accept", appointmentHandler.AcceptOffer)
				client.POST("/me/waitlist", waitlistHandler.Join)
				client.PATCH("/me/waitlist/:id/leave", waitlistHandler.Leave)
			}

			// compartidos: el dueño reprograma/cancela, el staff también
			secured.PATCH("/appointments/:id/reprogram", appointmentHandler.Reprogram)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// STAFF
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireStaff())
			{
				staff.GET("/appointments", appointmentHandler.ListByDate)
				staff.PATCH("/appointments/:id/approve", appointmentHandler.Approve)
				staff.PATCH("/appointments/:id/confirm-payment", appointmentHandler.ConfirmPayment)
				staff.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				staff.PATCH("/appointments/:id/no-show", appointmentHandler.MarkNoShow)

				staff.GET("/waitlist", waitlistHandler.List)
				staff.GET("/dashboard/stats", dashboardHandler.Stats)

				staff.GET("/working-hours", workingHoursHandler.List)
				staff.POST("/working-hours", workingHoursHandler.Create)
				staff.PATCH("/working-hours/:id", workingHoursHandler.Update)
				staff.DELETE("/working-hours/:id", workingHoursHandler.Delete)

				staff.GET("/schedule-blocks", scheduleBlockHandler.List)
				staff.POST("/schedule-blocks", scheduleBlockHandler.Create)
				staff.DELETE("/schedule-blocks/:id", scheduleBlockHandler.Delete)

				staff.GET("/resources/types", resourceHandler.ListTypes)
				staff.POST("/resources/types", resourceHandler.CreateType)
				staff.PATCH("/resources/types/:id", resourceHandler.UpdateType)
				staff.GET("/resources/units", resourceHandler.ListUnits)
				staff.POST("/resources/units", resourceHandler.CreateUnit)
				staff.PATCH("/resources/units/:id", resourceHandler.UpdateUnit)
				staff.GET("/resources/requirements", resourceHandler.ListRequirements)
				staff.POST("/resources/requirements", resourceHandler.CreateRequirement)
				staff.DELETE("/resources/requirements/:id", resourceHandler.DeleteRequirement)

				staff.GET("/services", serviceHandler.List)
				staff.POST("/services", serviceHandler.Create)
				staff.PATCH("/services/:id", serviceHandler.Update)
				staff.GET("/services/categories", serviceHandler.ListCategories)
				staff.POST("/services/categories", serviceHandler.CreateCategory)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/policy", policyHandler.Get)
				admin.PATCH("/policy", policyHandler.Update)
				admin.GET("/audit-logs", dashboardHandler.AuditLogs)
			}
		}
	}
}
