// Package registry собирает приложение реестра: хранилище, кэш, брокер,
// медиа-хранилище, сервисы и маршруты HTTP.
package registry

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ayushsetu/credential-registry/internal/config"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/adminusers"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/announcements"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/gallery"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/health"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/login"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/logout"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/me"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/profregister"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/refresh"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/register"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/research"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/updatedetails"
	"github.com/ayushsetu/credential-registry/internal/http-server/handlers/updatepicture"
	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/lib/jwt"
	"github.com/ayushsetu/credential-registry/internal/mediastore"
	"github.com/ayushsetu/credential-registry/internal/models"
	authservice "github.com/ayushsetu/credential-registry/internal/services/auth"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

// Services сервисы бизнес-уровня, участвующие в маршрутах.
type Services struct {
	Auth         *authservice.Service
	Professional profregister.Registrar
	Content      contentService
	AdminOps     adminusers.Service
}

type contentService interface {
	announcements.Service
	gallery.Service
	research.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, jwtMaker jwt.Maker, db *storage.Storage, media *mediastore.Client, svcs Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(mware.CORS(cfg.CORSOrigins))
	r.Use(mware.RateLimitMiddleware(logger))

	resolve := mware.ResolvePrincipal(jwtMaker, db, db, logger)
	userOnly := mware.RequireRole(logger, models.RoleUser)
	adminOnly := mware.RequireRole(logger, models.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New().ServeHTTP)

		// Публичная выдача материалов
		r.Get("/announcements", announcements.NewList(logger, svcs.Content, true).ServeHTTP)
		r.Get("/announcements/{id}", announcements.NewRead(logger, svcs.Content).ServeHTTP)
		r.Get("/gallery", gallery.NewList(logger, svcs.Content).ServeHTTP)
		r.Get("/gallery/{id}", gallery.NewRead(logger, svcs.Content).ServeHTTP)
		r.Get("/research", research.NewList(logger, svcs.Content).ServeHTTP)

		// Пользовательский контур
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", register.New(logger, svcs.Auth.RegisterUser).ServeHTTP)
			r.Post("/login", login.New(logger, cfg.Env, cfg.Tokens.User, func(ctx context.Context, emailOrPhone, password string) (any, *authservice.TokenPair, error) {
				user, pair, err := svcs.Auth.LoginUser(ctx, emailOrPhone, password)
				if err != nil {
					return nil, nil, err
				}
				return user.Sanitized(), pair, nil
			}).ServeHTTP)
			r.Post("/refresh", refresh.New(logger, cfg.Env, cfg.Tokens.User, func(ctx context.Context, token string) (any, *authservice.TokenPair, error) {
				user, pair, err := svcs.Auth.RefreshUser(ctx, token)
				if err != nil {
					return nil, nil, err
				}
				return user.Sanitized(), pair, nil
			}).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(resolve, userOnly)
				r.Post("/logout", logout.New(logger, cfg.Env, svcs.Auth.LogoutUser).ServeHTTP)
				r.Get("/me", me.New().ServeHTTP)
				r.Post("/update-details", updatedetails.New(logger, func(ctx context.Context, id, fullname, email, oldPassword, newPassword string) (any, error) {
					user, err := svcs.Auth.UpdateUserDetails(ctx, id, fullname, email, oldPassword, newPassword)
					if err != nil {
						return nil, err
					}
					return user.Sanitized(), nil
				}).ServeHTTP)
				r.Post("/update-profile-picture", updatepicture.New(logger, media, svcs.Auth.UpdateUserProfilePicture).ServeHTTP)

				r.Post("/medical-professional-registration", profregister.NewMedical(logger, svcs.Professional).ServeHTTP)
				r.Post("/non-medical-professional-registration", profregister.NewNonMedical(logger, svcs.Professional).ServeHTTP)
				r.Post("/research", research.NewUpload(logger, svcs.Content).ServeHTTP)
			})
		})

		// Административный контур
		r.Route("/admin", func(r chi.Router) {
			r.Post("/register", register.New(logger, svcs.Auth.RegisterAdmin).ServeHTTP)
			r.Post("/login", login.New(logger, cfg.Env, cfg.Tokens.Admin, func(ctx context.Context, emailOrPhone, password string) (any, *authservice.TokenPair, error) {
				admin, pair, err := svcs.Auth.LoginAdmin(ctx, emailOrPhone, password)
				if err != nil {
					return nil, nil, err
				}
				return admin.Sanitized(), pair, nil
			}).ServeHTTP)
			r.Post("/refresh", refresh.New(logger, cfg.Env, cfg.Tokens.Admin, func(ctx context.Context, token string) (any, *authservice.TokenPair, error) {
				admin, pair, err := svcs.Auth.RefreshAdmin(ctx, token)
				if err != nil {
					return nil, nil, err
				}
				return admin.Sanitized(), pair, nil
			}).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(resolve, adminOnly)
				r.Post("/logout", logout.New(logger, cfg.Env, svcs.Auth.LogoutAdmin).ServeHTTP)
				r.Get("/me", me.New().ServeHTTP)
				r.Post("/update-details", updatedetails.New(logger, func(ctx context.Context, id, fullname, email, oldPassword, newPassword string) (any, error) {
					admin, err := svcs.Auth.UpdateAdminDetails(ctx, id, fullname, email, oldPassword, newPassword)
					if err != nil {
						return nil, err
					}
					return admin.Sanitized(), nil
				}).ServeHTTP)

				r.Post("/announcements", announcements.NewCreate(logger, svcs.Content).ServeHTTP)
				r.Get("/announcements", announcements.NewList(logger, svcs.Content, false).ServeHTTP)
				r.Put("/announcements/{id}", announcements.NewUpdate(logger, svcs.Content).ServeHTTP)
				r.Delete("/announcements/{id}", announcements.NewRemove(logger, svcs.Content).ServeHTTP)

				r.Post("/gallery", gallery.NewCreate(logger, svcs.Content).ServeHTTP)
				r.Put("/gallery/{id}", gallery.NewUpdate(logger, svcs.Content).ServeHTTP)
				r.Delete("/gallery/{id}", gallery.NewRemove(logger, svcs.Content).ServeHTTP)

				r.Get("/users/stats", adminusers.NewStats(logger, svcs.AdminOps).ServeHTTP)
				r.Get("/users", adminusers.NewList(logger, svcs.AdminOps).ServeHTTP)
				r.Get("/users/{id}", adminusers.NewRead(logger, svcs.AdminOps).ServeHTTP)
				r.Delete("/users/{id}", adminusers.NewRemove(logger, svcs.AdminOps).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
