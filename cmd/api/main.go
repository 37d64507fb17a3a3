package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "go-erp/docs" // Import swagger docs
	common_api "go-erp/internal/common/api"
	"go-erp/internal/config"
	"go-erp/internal/database"
	"go-erp/internal/features/membership"
	"go-erp/internal/features/module"
	"go-erp/internal/features/permission"
	"go-erp/internal/features/role"
	"go-erp/internal/features/system"
	"go-erp/internal/logger"
	"go-erp/internal/metrics"
	"go-erp/internal/middleware"
	"go-erp/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates the Fiber app and installs the request pipeline:
// request id, access log, CORS, identity, then the tenant stage. Permission
// guards are attached per route by the feature APIs.
func NewFiberServer(
	cfg *config.Config,
	log *zap.Logger,
	verifier middleware.IdentityVerifier,
	tenant *middleware.TenantResolver,
) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(log))
	app.Use(middleware.CORSMiddleware(cfg))
	app.Use(middleware.Authenticate(verifier, log))
	app.Use(tenant.Handler())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for i, route := range routes {
		log.Printf("Setting up route %d: %T\n", i+1, route)
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures the unique membership index exists
func InitializeIndexes(lc fx.Lifecycle, store *membership.MongoStore, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				// Use a background context with timeout for index creation
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := store.EnsureIndexes(ctx); err != nil {
					logger.Error("Failed to ensure membership indexes", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

// InitializeSchema creates the membership tables before the server starts
func InitializeSchema(lc fx.Lifecycle, store *membership.PostgresStore) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.EnsureSchema(ctx)
		},
	})
}

func storeOption(cfg *config.Config) fx.Option {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return fx.Options(
			fx.Provide(
				database.NewPostgres,
				membership.NewPostgresStore,
				func(s *membership.PostgresStore) membership.Store { return s },
			),
			fx.Invoke(InitializeSchema),
		)
	case config.StoreMongo:
		return fx.Options(
			fx.Provide(
				database.NewDatabase,
				membership.NewMongoStore,
				func(s *membership.MongoStore) membership.Store { return s },
			),
			fx.Invoke(InitializeIndexes),
		)
	default:
		return fx.Error(fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver))
	}
}

// Adapters binding concrete services to the interfaces the stages declare.

func newIdentityVerifier(cfg *config.Config) middleware.IdentityVerifier {
	return utils.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)
}

func newRouteCatalog(registry *module.Registry) middleware.RouteCatalog {
	return registry
}

func newResolver(store membership.Store, logger *zap.Logger) *permission.Resolver {
	return permission.NewResolver(store, logger)
}

func newPermissionGuard(resolver *permission.Resolver, logger *zap.Logger, m *metrics.Metrics) *middleware.PermissionGuard {
	return middleware.NewPermissionGuard(resolver, logger, m)
}

func newTenantResolver(cfg *config.Config, access *membership.AccessService, logger *zap.Logger, m *metrics.Metrics) *middleware.TenantResolver {
	return middleware.NewTenantResolver(cfg, access, logger, m)
}

func newRoleService(store membership.Store) role.RoleService {
	return role.NewRoleService(store)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		storeOption(cfg),
		fx.Provide(
			logger.NewLogger,
			metrics.New,
			module.Load,
			newRouteCatalog,
			newIdentityVerifier,
			membership.NewAccessService,
			newResolver,
			newPermissionGuard,
			newTenantResolver,
			newRoleService,

			// Controllers
			module.NewModuleController,
			membership.NewCompanyController,
			permission.NewPermissionController,
			role.NewRoleController,

			NewFiberServer,

			// Routes
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewMetricsApi),
			AsRoute(module.NewModuleApi),
			AsRoute(membership.NewCompanyApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(role.NewRoleApi),
		),
		fx.Invoke(RegisterAllRoutesWithAnnotation),
		fx.Invoke(StartServer),
	)

	app.Run()
}
