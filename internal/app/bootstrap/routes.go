// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	activitiesfeature "github.com/dalemusser/heartfund/internal/app/features/activities"
	authgooglefeature "github.com/dalemusser/heartfund/internal/app/features/authgoogle"
	campaignsfeature "github.com/dalemusser/heartfund/internal/app/features/campaigns"
	dashboardfeature "github.com/dalemusser/heartfund/internal/app/features/dashboard"
	donationsfeature "github.com/dalemusser/heartfund/internal/app/features/donations"
	errorsfeature "github.com/dalemusser/heartfund/internal/app/features/errors"
	healthfeature "github.com/dalemusser/heartfund/internal/app/features/health"
	homefeature "github.com/dalemusser/heartfund/internal/app/features/home"
	logoutfeature "github.com/dalemusser/heartfund/internal/app/features/logout"
	participatefeature "github.com/dalemusser/heartfund/internal/app/features/participate"
	paymentsfeature "github.com/dalemusser/heartfund/internal/app/features/payments"
	uploadsfeature "github.com/dalemusser/heartfund/internal/app/features/uploads"
	userinfofeature "github.com/dalemusser/heartfund/internal/app/features/userinfo"
	"github.com/dalemusser/heartfund/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. HeartFund initializes the template
// engine, applies session middleware, and mounts feature routers for the
// home page, authentication, campaigns, donations, payments, activities,
// participation, dashboards, and uploads.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.HeartFundMongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Local blob storage for uploaded images.
	blobStore, err := newLocalBlobStore(appCfg.StorageLocalPath)
	if err != nil {
		logger.Error("upload storage init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.HeartFundMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Uploaded images
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Public pages
	homeHandler := homefeature.NewHandler(db, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	authHandler := authgooglefeature.NewHandler(db, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(authHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	userinfoHandler := userinfofeature.NewHandler()
	r.Mount("/api/userinfo", userinfofeature.Routes(userinfoHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Campaigns and donations
	campaignsHandler := campaignsfeature.NewHandler(db, logger)
	r.Route("/campaigns", campaignsHandler.MountRoutes)

	donationsHandler := donationsfeature.NewHandler(db, logger)
	r.Route("/donations", func(sr chi.Router) {
		sr.Use(auth.RequireSignedIn)
		donationsHandler.MountRoutes(sr)
	})

	paymentsHandler := paymentsfeature.NewHandler(db, appCfg.StripeSecretKey, logger)
	r.Route("/payments", func(sr chi.Router) {
		sr.Use(auth.RequireSignedIn)
		paymentsHandler.MountRoutes(sr)
	})

	// Volunteer activities and participation
	activitiesHandler := activitiesfeature.NewHandler(db, logger)
	r.Route("/activities", activitiesHandler.MountRoutes)

	participateHandler := participatefeature.NewHandler(db, logger)
	r.Route("/participate", func(sr chi.Router) {
		sr.Use(auth.RequireSignedIn)
		participateHandler.MountRoutes(sr)
	})

	// Dashboards
	dashboardHandler := dashboardfeature.NewHandler(db, logger)
	r.Route("/dashboard", func(sr chi.Router) {
		sr.Group(func(g chi.Router) {
			g.Use(auth.RequireSignedIn)
			dashboardHandler.MountRoutes(g)
		})
		sr.Group(func(g chi.Router) {
			g.Use(auth.RequireAdmin)
			dashboardHandler.MountAdminRoutes(g)
		})
	})

	// Image uploads
	uploadsHandler := uploadsfeature.NewHandler(blobStore, appCfg.StorageLocalURL, logger)
	r.Route("/uploads", uploadsHandler.MountRoutes)

	return r, nil
}
