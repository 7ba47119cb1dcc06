package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/appointment-booking-backend/internal/api"
	"github.com/nekogravitycat/appointment-booking-backend/internal/appointment"
	"github.com/nekogravitycat/appointment-booking-backend/internal/auth"
	"github.com/nekogravitycat/appointment-booking-backend/internal/notification"
	"github.com/nekogravitycat/appointment-booking-backend/internal/schedule"
	"github.com/nekogravitycat/appointment-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Template     *schedule.Template
	Notifier     notification.Notifier
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	template := cfg.Template
	if template == nil {
		template = schedule.Default()
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Appointment Module
	apptRepo := appointment.NewPgxRepository(cfg.DBPool)
	apptService := appointment.NewService(apptRepo, userService, template, notifier)

	// API Router Config
	routerParams := api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		AppointmentService: apptService,
		Template:           template,
		JWTManager:         jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
