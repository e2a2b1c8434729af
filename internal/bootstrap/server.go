package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/zvrva/stayfinder/api"
	"github.com/zvrva/stayfinder/config"
	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/service/auth"
	"github.com/zvrva/stayfinder/internal/service/booking"
	"github.com/zvrva/stayfinder/internal/service/listings"
)

// Run starts the HTTP server and blocks until the context is cancelled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, listingSvc listings.ListingUseCase, bookingSvc booking.BookingUseCase, authSvc auth.AuthUseCase) error {
	router := NewRouter(cfg, listingSvc, bookingSvc, authSvc)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires middleware and handlers into a gin engine.
func NewRouter(cfg *config.Config, listingSvc listings.ListingUseCase, bookingSvc booking.BookingUseCase, authSvc auth.AuthUseCase) *gin.Engine {
	router := gin.Default()

	origins := cfg.HTTP.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/stayfinder.swagger.json"),
		)))
	}

	authRequired := api.AuthMiddleware(authSvc)
	hostOnly := api.RequireRole(domain.UserRoleHost)
	guestOnly := api.RequireRole(domain.UserRoleGuest)

	root := router.Group("/api")

	api.NewAuthHandler(authSvc).Register(root.Group("/auth"), authRequired)
	api.NewListingHandler(listingSvc, bookingSvc).Register(root.Group("/listings"), authRequired, hostOnly)

	bookingsGroup := root.Group("/bookings")
	bookingsGroup.Use(authRequired)
	api.NewBookingHandler(bookingSvc).Register(bookingsGroup, guestOnly, hostOnly)

	return router
}
