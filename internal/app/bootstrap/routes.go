// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	boardsfeature "github.com/kvnhng/boardhub/internal/app/features/boards"
	cardsfeature "github.com/kvnhng/boardhub/internal/app/features/cards"
	columnsfeature "github.com/kvnhng/boardhub/internal/app/features/columns"
	healthfeature "github.com/kvnhng/boardhub/internal/app/features/health"
	templatesfeature "github.com/kvnhng/boardhub/internal/app/features/templates"
	usersfeature "github.com/kvnhng/boardhub/internal/app/features/users"
	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	templatestore "github.com/kvnhng/boardhub/internal/app/store/templates"
	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/cardops"
	"github.com/kvnhng/boardhub/internal/app/system/mailer"
	"github.com/kvnhng/boardhub/internal/app/system/reconcile"
	"github.com/kvnhng/boardhub/internal/app/system/templatesync"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. It wires the stores, the core
// managers, and the feature routers into one chi router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	secure := coreCfg.Env == "prod"

	boards := boardstore.New(db)
	columns := columnstore.New(db)
	cards := cardstore.New(db)
	templates := templatestore.New(db)
	users := userstore.New(db)

	tokens := auth.NewTokenManager(
		appCfg.JWTAccessSecret, appCfg.JWTRefreshSecret,
		appCfg.JWTAccessTTL, appCfg.JWTRefreshTTL)

	mail := mailer.New(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.SiteName, logger)

	sync := templatesync.New(templates, users, appCfg.TemplateDefaultCover, logger)
	manager := cardops.New(cards, columns, deps.Blobs, logger)
	checker := reconcile.New(columns, cards, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	usersHandler := usersfeature.NewHandler(users, tokens, mail, deps.Blobs, secure, logger)
	boardsHandler := boardsfeature.NewHandler(boards, columns, cards, sync, checker, logger)
	columnsHandler := columnsfeature.NewHandler(boards, columns, cards, logger)
	cardsHandler := cardsfeature.NewHandler(manager, columns, logger)
	templatesHandler := templatesfeature.NewHandler(templates, users, logger)

	r.Route("/v1", func(v chi.Router) {
		// Account flows carry their own auth requirements.
		v.Mount("/users", usersfeature.Routes(usersHandler, tokens))

		v.Group(func(pr chi.Router) {
			pr.Use(auth.RequireSignedIn(tokens))
			pr.Mount("/boards", boardsfeature.Routes(boardsHandler))
			pr.Mount("/columns", columnsfeature.Routes(columnsHandler))
			pr.Mount("/cards", cardsfeature.Routes(cardsHandler))
			pr.Mount("/templates", templatesfeature.Routes(templatesHandler))
		})
	})

	return r, nil
}
