package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"barbershop/internal/config"
	"barbershop/internal/database"
	"barbershop/internal/metrics"
	"barbershop/internal/middleware"
	"barbershop/internal/modules/auth"
	"barbershop/internal/modules/booking"
	"barbershop/internal/modules/schedule"
	"barbershop/internal/modules/settings"
	"barbershop/internal/notification"
	jwtsvc "barbershop/internal/pkg/jwt"
	"barbershop/internal/pkg/validate"
	"barbershop/internal/repository"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}

	metrics.Register()

	bookingRepo := repository.NewBookingRepository(db)
	blockedRepo := repository.NewBlockedDateRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	overrideRepo := repository.NewSlotOverrideRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)
	hub := notification.NewHub()
	defer hub.Close()

	authService := auth.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, j, cfg.TokenTTL)
	authHandler := auth.NewHandler(authService)

	scheduleService := schedule.NewService(bookingRepo, blockedRepo, settingsRepo, overrideRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	bookingService := booking.NewService(bookingRepo, serviceRepo, scheduleService, settingsRepo, hub)
	bookingHandler := booking.NewHandler(bookingService)

	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(settingsService)

	notificationHandler := notification.NewHandler(hub)

	gin.SetMode(gin.ReleaseMode)
	validate.RegisterBindings()
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.CORSOrigins))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"success": true, "data": gin.H{"status": "ok"}})
		})

		authHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterPublicRoutes(v1)
		settingsHandler.RegisterPublicRoutes(v1)

		public := v1.Group("/")
		public.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		{
			bookingHandler.RegisterPublicRoutes(public)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			bookingHandler.RegisterAdminRoutes(admin)
			scheduleHandler.RegisterAdminRoutes(admin)
			settingsHandler.RegisterAdminRoutes(admin)
			notificationHandler.RegisterRoutes(admin)
		}
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting api")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
