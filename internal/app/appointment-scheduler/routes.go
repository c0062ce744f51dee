// Package appointmentscheduler предоставляет маршруты для основного приложения.
package appointmentscheduler

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	adminappointments "github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/admin/appointments"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/admin/addprovider"
	admincancel "github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/admin/cancel"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/admin/suspend"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/admin/unsuspend"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/appointment/book"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/appointment/cancel"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/appointment/list"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/auth/forgot"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/auth/reset"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/auth/sendotp"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/auth/verifyotp"
	providerlist "github.com/magabrotheeeer/appointment-scheduler/internal/http/handlers/provider/list"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/jwt"
	adminservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/admin"
	authservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/booking"
	providerservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/provider"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	sessions middlewarectx.SessionStore,
	authService *authservice.AuthService,
	bookingService *bookingservice.BookingService,
	providerService *providerservice.ProviderService,
	adminService *adminservice.AdminService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register/send-otp", sendotp.New(logger, authService).ServeHTTP)
		r.Post("/register/verify-otp", verifyotp.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/password/forgot", forgot.New(logger, authService).ServeHTTP)
		r.Post("/password/reset", reset.New(logger, authService).ServeHTTP)

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(jwtMaker, sessions, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Get("/providers", providerlist.New(logger, providerService).ServeHTTP)
			r.Post("/appointments", book.New(logger, bookingService).ServeHTTP)
			r.Get("/appointments", list.New(logger, bookingService).ServeHTTP)
			r.Delete("/appointments/{id}", cancel.New(logger, bookingService).ServeHTTP)

			// Группа администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/admin/users/suspend", suspend.New(logger, adminService).ServeHTTP)
				r.Post("/admin/users/unsuspend", unsuspend.New(logger, adminService).ServeHTTP)
				r.Get("/admin/appointments", adminappointments.New(logger, adminService).ServeHTTP)
				r.Delete("/admin/appointments/{id}", admincancel.New(logger, bookingService).ServeHTTP)
				r.Get("/admin/dashboard", dashboard.New(logger, adminService).ServeHTTP)
				r.Post("/admin/providers", addprovider.New(logger, adminService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
