package router

import (
	"github.com/alibia/backoffice/internal/application"
	"github.com/alibia/backoffice/internal/container"
	pginfra "github.com/alibia/backoffice/internal/infrastructure/postgres"
	handlers "github.com/alibia/backoffice/internal/interface/http"
	"github.com/alibia/backoffice/internal/router/modules"
)

// InitModules builds every feature module from the container singletons
// and registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	userSvc := application.NewUserService(userRepo, jwt, container.GetGCS(), cfg.GCSBucket, logger)

	clientRepo := pginfra.NewUserClientRepository(pool)
	var queue application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		queue = pub
	}
	clientSvc := application.NewClientAuthService(clientRepo, jwt, queue, logger, cfg.MailSendEnabled)

	catalogSvc := application.NewCatalogService(
		pginfra.NewCategoryRepository(pool),
		pginfra.NewProductRepository(pool),
		pginfra.NewProductImageRepository(pool),
		container.GetGCS(), cfg.GCSBucket,
		container.GetES(), cfg.ESProductsIndex,
		logger,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewClientAuthModule(handlers.NewClientAuthHandler(clientSvc, container.GetCookies(), logger), jwt))
	r.Add(modules.NewCatalogModule(
		handlers.NewCategoryHandler(catalogSvc, logger),
		handlers.NewProductHandler(catalogSvc, logger),
		handlers.NewProductImageHandler(catalogSvc, logger),
		jwt,
	))
	r.Add(modules.NewDebugModule())
}
