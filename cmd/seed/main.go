package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"go-erp/internal/config"
	"go-erp/internal/database"
	"go-erp/internal/features/membership"
	"go-erp/internal/features/role"
	"go-erp/internal/logger"
	"go-erp/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const demoDataPath = "cmd/seed/data/demo.json"

type seedData struct {
	Companies []membership.Company `json:"companies"`
	Roles     []struct {
		ID        int64           `json:"id"`
		CompanyID int64           `json:"companyId"`
		Name      string          `json:"name"`
		IsSystem  bool            `json:"isSystem"`
		Policy    json.RawMessage `json:"policy"`
	} `json:"roles"`
	Memberships []membership.Membership `json:"memberships"`
}

// Seed loads demo companies, roles and memberships into MongoDB and prints a
// development token for every seeded user.
func Seed(
	lc fx.Lifecycle,
	cfg *config.Config,
	store *membership.MongoStore,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()

				logger.Info("Starting demo data seeding", zap.String("path", demoDataPath))

				b, err := os.ReadFile(demoDataPath)
				if err != nil {
					logger.Error("Failed to read seed data", zap.Error(err))
					return
				}
				var data seedData
				if err := json.Unmarshal(b, &data); err != nil {
					logger.Error("Failed to parse seed data", zap.Error(err))
					return
				}

				if err := store.EnsureIndexes(ctx); err != nil {
					logger.Error("Failed to ensure indexes", zap.Error(err))
					return
				}

				for i := range data.Companies {
					if err := store.UpsertCompany(ctx, &data.Companies[i]); err != nil {
						logger.Error("Failed to seed company", zap.Error(err))
						continue
					}
					logger.Info("Company seeded", zap.String("company", data.Companies[i].Name))
				}

				for _, r := range data.Roles {
					seeded := role.Role{
						ID:          r.ID,
						CompanyID:   r.CompanyID,
						Name:        r.Name,
						IsSystem:    r.IsSystem,
						Permissions: string(r.Policy),
					}
					if err := store.UpsertRole(ctx, &seeded); err != nil {
						logger.Error("Failed to seed role", zap.Error(err))
						continue
					}
					logger.Info("Role seeded", zap.String("role", r.Name), zap.Int64("tenantId", r.CompanyID))
				}

				verifier := utils.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)
				for i := range data.Memberships {
					m := &data.Memberships[i]
					m.IsActive = true
					if err := store.UpsertMembership(ctx, m); err != nil {
						logger.Error("Failed to seed membership", zap.Error(err))
						continue
					}

					token, err := verifier.GenerateToken(m.UserID, "", 72*time.Hour)
					if err != nil {
						logger.Error("Failed to sign demo token", zap.Error(err))
						continue
					}
					logger.Info("Membership seeded",
						zap.Int64("userId", m.UserID),
						zap.Int64("tenantId", m.CompanyID),
						zap.Int64("roleId", m.RoleID),
						zap.String("token", token),
					)
				}

				logger.Info("Demo data seeding completed")
			}()
			return nil
		},
	})
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
		fx.Provide(
			database.NewDatabase,
			logger.NewLogger,
			membership.NewMongoStore,
		),
		fx.Invoke(Seed),
	)

	app.Run()
}
