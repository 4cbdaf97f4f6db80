// Package gymapi собирает HTTP API зала: маршруты, middleware и жизненный цикл сервера.
package gymapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/community/answer"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/community/questioncreate"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/community/questionlist"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/community/reviewcreate"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/community/reviewlist"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/community/vote"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/addons"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/assign"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/assignments"
	membershipget "github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/get"
	membershiplist "github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/list"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/seed"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/nutrition/dietget"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/nutrition/dietsave"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/nutrition/targetsget"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/nutrition/targetssave"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/broadcastcreate"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/broadcastlist"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/broadcastremove"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/broadcastupdate"
	remindercreate "github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/create"
	reminderlist "github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/list"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/markread"
	reminderremove "github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/remove"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/sendexpiry"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/sweep"
	reminderupdate "github.com/magabrotheeeer/gym-manager/internal/http/handlers/reminder/update"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/user/updateprofile"
	userlist "github.com/magabrotheeeer/gym-manager/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	communityservice "github.com/magabrotheeeer/gym-manager/internal/services/community"
	membershipservice "github.com/magabrotheeeer/gym-manager/internal/services/membership"
	nutritionservice "github.com/magabrotheeeer/gym-manager/internal/services/nutrition"
	reminderservice "github.com/magabrotheeeer/gym-manager/internal/services/reminder"
	userservice "github.com/magabrotheeeer/gym-manager/internal/services/user"
)

// Services сервисы, которые обслуживают маршруты API.
type Services struct {
	Auth        *authservice.Service
	Users       *userservice.Service
	Memberships *membershipservice.Service
	Reminders   *reminderservice.Service
	Community   *communityservice.Service
	Nutrition   *nutritionservice.Service
	DB          health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, limits config.RateLimit, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger, limits),
	)

	r.Get("/health", health.New(logger, s.DB).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/memberships", membershiplist.New(logger, s.Memberships).ServeHTTP)
		r.Get("/memberships/{id}", membershipget.New(logger, s.Memberships).ServeHTTP)
		r.Get("/addons", addons.New(logger, s.Memberships).ServeHTTP)
		r.Get("/reviews", reviewlist.New(logger, s.Community).ServeHTTP)
		r.Get("/questions", questionlist.New(logger, s.Community).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(logger, s.Auth))

			r.Get("/me", profile.New(logger, s.Users).ServeHTTP)
			r.Put("/me", updateprofile.New(logger, s.Users).ServeHTTP)

			r.Get("/reminders", reminderlist.New(logger, s.Reminders).ServeHTTP)
			r.Post("/reminders/{id}/read", markread.New(logger, s.Reminders).ServeHTTP)

			r.Post("/questions", questioncreate.New(logger, s.Community).ServeHTTP)
			r.Post("/questions/{id}/answers", answer.New(logger, s.Community).ServeHTTP)
			r.Post("/questions/{id}/{vote}", vote.New(logger, s.Community).ServeHTTP)
			r.Post("/reviews", reviewcreate.New(logger, s.Community).ServeHTTP)

			r.Get("/diet", dietget.New(logger, s.Nutrition).ServeHTTP)
			r.Post("/diet", dietsave.New(logger, s.Nutrition).ServeHTTP)
			r.Get("/targets", targetsget.New(logger, s.Nutrition).ServeHTTP)
			r.Post("/targets", targetssave.New(logger, s.Nutrition).ServeHTTP)

			r.Get("/memberships/assignments", assignments.New(logger, s.Memberships).ServeHTTP)

			// Только администратор
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))

				r.Post("/admin/assign-membership", assign.New(logger, s.Memberships).ServeHTTP)
				r.Get("/admin/assignments", assignments.NewAdmin(logger, s.Memberships).ServeHTTP)
				r.Post("/admin/memberships/seed", seed.New(logger, s.Memberships).ServeHTTP)
				r.Get("/admin/users", userlist.New(logger, s.Users).ServeHTTP)

				r.Post("/admin/reminders", broadcastcreate.New(logger, s.Reminders).ServeHTTP)
				r.Get("/admin/reminders", broadcastlist.New(logger, s.Reminders).ServeHTTP)
				r.Post("/admin/reminders/sweep", sweep.New(logger, s.Reminders).ServeHTTP)
				r.Post("/admin/send-reminder", sendexpiry.New(logger, s.Reminders).ServeHTTP)
				r.Put("/broadcast-reminders/{id}", broadcastupdate.New(logger, s.Reminders).ServeHTTP)
				r.Delete("/broadcast-reminders/{id}", broadcastremove.New(logger, s.Reminders).ServeHTTP)

				r.Post("/reminders", remindercreate.New(logger, s.Reminders).ServeHTTP)
				r.Put("/reminders/{id}", reminderupdate.New(logger, s.Reminders).ServeHTTP)
				r.Delete("/reminders/{id}", reminderremove.New(logger, s.Reminders).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
