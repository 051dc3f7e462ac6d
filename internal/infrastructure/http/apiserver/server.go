// Package apiserver provides the JSON API HTTP server.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/infrastructure/config"
	"github.com/smartrecipe/server/internal/infrastructure/http/handlers"
	"github.com/smartrecipe/server/internal/infrastructure/http/middleware"
	"github.com/smartrecipe/server/internal/infrastructure/security"
	"github.com/smartrecipe/server/internal/ports/inbound"
)

// APIServer serves the JSON API over chi.
type APIServer struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	router *chi.Mux

	authService       *security.AuthService
	userService       inbound.UserService
	ingredientService inbound.IngredientService
	recipeService     inbound.RecipeService
	shoppingService   inbound.ShoppingService
	communityService  inbound.CommunityService
	nutritionService  inbound.NutritionService

	db          *gorm.DB
	redisClient *redis.Client
}

// NewAPIServer creates the API server with all routes wired.
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	authService *security.AuthService,
	userService inbound.UserService,
	ingredientService inbound.IngredientService,
	recipeService inbound.RecipeService,
	shoppingService inbound.ShoppingService,
	communityService inbound.CommunityService,
	nutritionService inbound.NutritionService,
	db *gorm.DB,
	redisClient *redis.Client,
) *APIServer {
	server := &APIServer{
		config:            cfg,
		logger:            log,
		authService:       authService,
		userService:       userService,
		ingredientService: ingredientService,
		recipeService:     recipeService,
		shoppingService:   shoppingService,
		communityService:  communityService,
		nutritionService:  nutritionService,
		db:                db,
		redisClient:       redisClient,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the middleware stack and the API route table.
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS())
	}
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(s.config.RateLimit, s.logger))

	platformH := handlers.NewPlatformAPIHandlers(s.config, s.db, s.redisClient, s.logger)
	r.Get("/health", platformH.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	// Uploaded media is served straight off the local media root.
	mediaPrefix := strings.TrimRight(s.config.Storage.MediaURL, "/")
	fileServer := http.StripPrefix(mediaPrefix, http.FileServer(http.Dir(s.config.Storage.LocalPath)))
	r.Get(mediaPrefix+"/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		s.setupAPIRoutes(r, platformH)
	})

	return r
}

func (s *APIServer) setupAPIRoutes(r chi.Router, platformH *handlers.PlatformAPIHandlers) {
	authH := handlers.NewAuthAPIHandlers(s.userService, s.logger)
	ingredientH := handlers.NewIngredientAPIHandlers(s.ingredientService, s.logger)
	recipeH := handlers.NewRecipeAPIHandlers(s.recipeService, s.logger)
	shoppingH := handlers.NewShoppingAPIHandlers(s.shoppingService, s.logger)
	communityH := handlers.NewCommunityAPIHandlers(s.communityService, s.logger)
	nutritionH := handlers.NewNutritionAPIHandlers(s.nutritionService, s.logger)
	uploadH := handlers.NewUploadAPIHandlers(s.config, s.logger)

	authenticated := middleware.AuthenticateAPI(s.authService)

	r.Get("/", platformH.Index)
	r.Post("/token/refresh/", authH.RefreshToken)

	r.Route("/user", func(r chi.Router) {
		r.Post("/register/", authH.Register)
		r.Post("/login/", authH.Login)
		r.Post("/logout/", authH.Logout)
		r.Post("/token/refresh/", authH.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/profile/", authH.GetProfile)
			r.Put("/profile/", authH.UpdateProfile)
			r.Patch("/profile/", authH.UpdateProfile)
			r.Post("/change-password/", authH.ChangePassword)
			r.Get("/following/", authH.Following)
			r.Post("/{id}/follow/", authH.Follow)
			r.Delete("/{id}/follow/", authH.Unfollow)
		})

		r.Get("/{id}/", authH.PublicProfile)
	})

	r.Route("/ingredient", func(r chi.Router) {
		r.Get("/", ingredientH.List)
		r.Get("/search/", ingredientH.Search)
		r.Get("/seasonal/", ingredientH.Seasonal)
		r.Post("/nutrition-calculate/", ingredientH.CalculateNutrition)
		r.Post("/recommend/", ingredientH.Recommend)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/recognize/", ingredientH.Recognize)
			r.Get("/history/", ingredientH.History)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated, middleware.RequireStaff())
			r.Post("/manage/", ingredientH.Create)
			r.Put("/manage/{id}/", ingredientH.Update)
			r.Delete("/manage/{id}/", ingredientH.Delete)
		})

		r.Get("/{id}/", ingredientH.Get)
	})

	r.Route("/recipe", func(r chi.Router) {
		r.Get("/", recipeH.List)
		r.Get("/search/", recipeH.Search)
		r.Get("/recommend/", recipeH.Recommend)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/create/", recipeH.Create)
			r.Get("/favorites/", recipeH.Favorites)
			r.Get("/my-recipes/", recipeH.MyRecipes)
			r.Put("/{id}/update/", recipeH.Update)
			r.Patch("/{id}/update/", recipeH.Update)
			r.Delete("/{id}/delete/", recipeH.Delete)
			r.Post("/{id}/like/", recipeH.Like)
			r.Post("/{id}/favorite/", recipeH.Favorite)
		})

		// Detail is public but records a view behavior when a valid
		// token is presented.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(s.authService))
			r.Get("/{id}/", recipeH.Get)
		})
	})

	r.Route("/shopping-list", func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/", shoppingH.List)
		r.Post("/", shoppingH.Add)
		r.Post("/generate/", shoppingH.Generate)
		r.Put("/{id}/", shoppingH.Update)
		r.Patch("/{id}/", shoppingH.Update)
		r.Delete("/{id}/", shoppingH.Delete)
	})

	r.Route("/community", func(r chi.Router) {
		r.Get("/posts/", communityH.ListPosts)
		r.Get("/posts/{id}/", communityH.GetPost)
		r.Get("/posts/{id}/comments/", communityH.ListPostComments)
		r.Get("/comment/", communityH.ListComments)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/posts/", communityH.CreatePost)
			r.Post("/posts/{id}/like/", communityH.LikePost)
			r.Post("/posts/{id}/comments/", communityH.CreatePostComment)
			r.Post("/comment/create/", communityH.CreateComment)
		})
	})

	r.Route("/nutrition", func(r chi.Router) {
		r.Get("/recipe/{id}/", nutritionH.RecipeNutrition)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/diary/", nutritionH.Diary)
			r.Post("/diary/", nutritionH.AddLog)
			r.Delete("/diary/{id}/", nutritionH.DeleteLog)
			r.Get("/report/", nutritionH.Report)
			r.Get("/advice/", nutritionH.Advice)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticated)
		r.Post("/upload/", uploadH.Upload)
	})
}

// Start starts the API HTTP server.
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance.
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server.
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}
