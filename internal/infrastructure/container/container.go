// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	communityapp "github.com/smartrecipe/server/internal/application/community"
	ingredientapp "github.com/smartrecipe/server/internal/application/ingredient"
	nutritionapp "github.com/smartrecipe/server/internal/application/nutrition"
	recipeapp "github.com/smartrecipe/server/internal/application/recipe"
	shoppingapp "github.com/smartrecipe/server/internal/application/shopping"
	userapp "github.com/smartrecipe/server/internal/application/user"
	"github.com/smartrecipe/server/internal/infrastructure/cache"
	"github.com/smartrecipe/server/internal/infrastructure/config"
	"github.com/smartrecipe/server/internal/infrastructure/http/apiserver"
	gormrepo "github.com/smartrecipe/server/internal/infrastructure/persistence/gorm"
	"github.com/smartrecipe/server/internal/infrastructure/persistence/postgres"
	"github.com/smartrecipe/server/internal/infrastructure/security"
	"github.com/smartrecipe/server/pkg/logger"
)

// Module wires the full application graph with the default config lookup.
var Module = New("")

// New wires the full application graph, loading configuration from the
// given path (or the default search locations when empty).
func New(configPath string) fx.Option {
	return fx.Options(
		fx.Provide(func() (*config.Config, error) {
			return config.Load(configPath)
		}),
		LoggerModule,
		DatabaseModule,
		CacheModule,
		SecurityModule,
		RepositoryModule,
		ServiceModule,
		HTTPModule,
		LifecycleModule,
	)
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the gorm connection
var DatabaseModule = fx.Provide(
	postgres.Connect,
)

// CacheModule provides the redis client and the recipe cache
var CacheModule = fx.Provide(
	cache.NewRedisClient,
	cache.NewRecipeCache,
)

// SecurityModule provides JWT auth and password hashing
var SecurityModule = fx.Provide(
	security.NewAuthService,
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewUserRepository,
	gormrepo.NewIngredientRepository,
	gormrepo.NewRecipeRepository,
	gormrepo.NewShoppingRepository,
	gormrepo.NewCommunityRepository,
	gormrepo.NewNutritionRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	userapp.NewUserService,
	ingredientapp.NewIngredientService,
	recipeapp.NewRecipeService,
	shoppingapp.NewShoppingService,
	communityapp.NewCommunityService,
	nutritionapp.NewNutritionService,
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule starts and stops the process pieces
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
