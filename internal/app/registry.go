package app

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-teamplanner/internal/auth"
	"go-teamplanner/internal/calendar"
	"go-teamplanner/internal/conflict"
	"go-teamplanner/internal/employee"
	"go-teamplanner/internal/leave"
	"go-teamplanner/internal/mailer"
	"go-teamplanner/internal/messaging/kafka"
	"go-teamplanner/internal/notification"
	"go-teamplanner/internal/preference"
	"go-teamplanner/internal/rbac"
	"go-teamplanner/internal/rbac/infra"
	"go-teamplanner/internal/rbac/rbac_http"
	"go-teamplanner/internal/schedule"
	"go-teamplanner/internal/shared/counter"
	"go-teamplanner/internal/shift"
	"go-teamplanner/internal/swap"
	"go-teamplanner/internal/team"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	swapRepo := swap.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	preferenceRepo := preference.NewRepository(gormDB)
	emailLogRepo := mailer.NewLogRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Notification pipeline ---
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	sender := mailer.NewGomailSender(
		os.Getenv("SMTP_HOST"),
		smtpPort,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_FROM"),
	)
	icsBuilder := calendar.NewBuilder(os.Getenv("ICS_UID_DOMAIN"))
	preferenceService := preference.NewService(preferenceRepo)
	dispatcher := notification.NewDispatcher(notificationRepo, preferenceService, emailLogRepo, sender, icsBuilder)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	teamService := team.NewService(db, teamRepo)
	scheduleService := schedule.NewService(db, scheduleRepo, outboxRepo)
	shiftService := shift.NewService(db, shiftRepo, employeeRepo, dispatcher)
	swapService := swap.NewService(db, swapRepo, shiftRepo, employeeRepo, dispatcher)
	dayWindow := conflict.DayWindow{
		Start: os.Getenv("WORKDAY_START"),
		End:   os.Getenv("WORKDAY_END"),
	}
	leaveService := leave.NewService(db, leaveRepo, shiftRepo, swapRepo, employeeRepo, dispatcher, dayWindow)
	notificationService := notification.NewServiceWithEmailLog(notificationRepo, emailLogRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	teamHandler := team.NewHandler(teamService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	shiftHandler := shift.NewHandler(shiftService)
	swapHandler := swap.NewHandler(swapService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	preferenceHandler := preference.NewHandler(preferenceService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		team.RegisterRoutes(api, teamHandler, rbacService, logger)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService, logger)
		shift.RegisterRoutes(api, shiftHandler, rbacService, logger)
		swap.RegisterRoutes(api, swapHandler, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, logger, rdb)
		notification.RegisterRoutes(api, notificationHandler)
		preference.RegisterRoutes(api, preferenceHandler)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
