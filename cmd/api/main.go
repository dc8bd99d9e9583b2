package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicdesk/booking-api/internal/config"
	"github.com/clinicdesk/booking-api/internal/handler"
	appointmentHandler "github.com/clinicdesk/booking-api/internal/handler/appointment"
	authHandler "github.com/clinicdesk/booking-api/internal/handler/auth"
	doctorHandler "github.com/clinicdesk/booking-api/internal/handler/doctor"
	"github.com/clinicdesk/booking-api/internal/middleware"
	"github.com/clinicdesk/booking-api/internal/policy"
	"github.com/clinicdesk/booking-api/internal/repository/postgres"
	"github.com/clinicdesk/booking-api/internal/router"
	appointmentService "github.com/clinicdesk/booking-api/internal/service/appointment"
	authService "github.com/clinicdesk/booking-api/internal/service/auth"
	doctorService "github.com/clinicdesk/booking-api/internal/service/doctor"
	"github.com/clinicdesk/booking-api/pkg/auth"
	"github.com/clinicdesk/booking-api/pkg/logger"
	"github.com/clinicdesk/booking-api/pkg/messaging"
	redisBroker "github.com/clinicdesk/booking-api/pkg/messaging/redis"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, log.Zerolog())
		if err != nil {
			// The broker is best-effort event plumbing; bookings work without it.
			log.Error(err, "redis broker unavailable, continuing without events")
			broker = nil
		} else {
			defer broker.Close()
		}
	}

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)

	pol := policy.NewRolePolicy()

	authSvc := authService.NewService(userRepo, jwtSvc, log)
	doctorSvc := doctorService.NewService(doctorRepo, pol, log)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorSvc, pol, broker, log)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	handler.RegisterCustomValidators()

	r := router.NewRouter(
		handler.NewHandler(db),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "booking_api",
		},
		authHandler.NewHandler(authSvc),
		doctorHandler.NewHandler(doctorSvc, authMw),
		appointmentHandler.NewHandler(appointmentSvc, authMw),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "forced shutdown")
	}
}
