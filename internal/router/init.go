package router

import (
	"context"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/container"
	"github.com/oksasatya/go-member-portal/internal/infrastructure/queue"
	"github.com/oksasatya/go-member-portal/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-member-portal/internal/interface/http"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
	"github.com/oksasatya/go-member-portal/internal/interface/web"
	"github.com/oksasatya/go-member-portal/internal/router/modules"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

// Deps is everything the HTTP layer is built from. It is assembled from the
// container by BuildDeps; tests assemble it directly.
type Deps struct {
	Auth     *application.AuthService
	Admin    *application.AdminService
	Sessions *middleware.Sessions
	Pages    *handlers.Pages
	Checks   map[string]handlers.Pinger

	AdminEnabled bool
	ExposeExpvar bool
}

// BuildDeps wires services from the container singletons. Search and the
// welcome email are only wired when their backends were configured.
func BuildDeps() (Deps, *application.SessionManager, error) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	users := container.GetUserRepo()

	var indexer application.UserIndexer
	if es := container.GetES(); es != nil {
		indexer = search.NewUserIndex(es, cfg.ESUsersIndex, logger)
	}
	var notifier application.WelcomeNotifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = queue.NewWelcomePublisher(pub, cfg.AppName)
	}

	view, err := web.NewRenderer()
	if err != nil {
		return Deps{}, nil, err
	}

	mgr := application.NewSessionManager(container.GetSessionStore(), container.GetSigner(), cfg.SessionTTL, logger)
	deps := Deps{
		Auth:         application.NewAuthService(users, logger, indexer, notifier),
		Admin:        application.NewAdminService(users, logger, indexer),
		Sessions:     middleware.NewSessions(mgr, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), logger),
		Pages:        handlers.NewPages(view, logger, cfg.AdminFeaturesEnabled),
		Checks:       map[string]handlers.Pinger{},
		AdminEnabled: cfg.AdminFeaturesEnabled,
		ExposeExpvar: cfg.DebugMetricsEnabled,
	}
	if pool := container.GetPGPool(); pool != nil {
		deps.Checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		deps.Checks["redis"] = func(ctx context.Context) error { return helpers.PingRedis(ctx, rdb) }
	}
	return deps, mgr, nil
}

// InitModules registers the session middleware and all feature modules.
// Admin routes are left out entirely when admin features are disabled.
func InitModules(r *Registry, d Deps) {
	r.Use(d.Sessions.Handle())

	members := handlers.NewMemberHandler(d.Pages)
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Pages, d.Auth, d.Sessions)))
	r.Add(modules.NewMemberModule(members))
	if d.AdminEnabled {
		r.Add(modules.NewAdminModule(handlers.NewAdminHandler(d.Pages, d.Admin), d.Pages.Logger))
	}
	r.Add(modules.NewDebugModule(handlers.NewHealthHandler(d.Checks), d.ExposeExpvar))

	r.RegisterAll(members.NotFound)
}
