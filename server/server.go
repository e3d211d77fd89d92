package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"houses-api/cache"
	"houses-api/confs"
	"houses-api/db"
	"houses-api/entities"
	"houses-api/handlers"
	httpHandler "houses-api/handlers/http"
	"houses-api/logger"
	"houses-api/middleware"
	"houses-api/repositories"
	"houses-api/services"
	"houses-api/usecases"
	"houses-api/ws"

	"github.com/gin-gonic/gin"
)

type Server struct {
	app        *gin.Engine
	cfg        *confs.Config
	db         db.Database
	log        *logger.Logger
	manager    *ws.Manager
	users      *cache.UserCache
	reconciler *services.RatingReconciler
}

func NewServer(cfg *confs.Config, database db.Database, store usecases.PhotoStore, log *logger.Logger) *Server {
	s := &Server{
		app:     gin.New(),
		cfg:     cfg,
		db:      database,
		log:     log,
		manager: ws.NewManager(log),
		users:   cache.NewUserCache(cfg.ActorCacheTTL),
	}
	s.routes(store)
	return s
}

func (s *Server) routes(store usecases.PhotoStore) {
	metrics := middleware.NewMetrics()
	s.app.Use(gin.Recovery(), middleware.RequestLogger(s.log), metrics.Middleware(), middleware.CORS(s.cfg.CORSOrigins))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	s.app.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Initialize repositories
	houseRepo := repositories.NewHousePgRepository(s.db)
	bookRepo := repositories.NewBookPgRepository(s.db)
	reviewRepo := repositories.NewReviewPgRepository(s.db)
	userRepo := repositories.NewUserPgRepository(s.db)

	// Initialize use cases
	lifecycle := usecases.NewLifecycle(houseRepo, bookRepo, reviewRepo, s.log)
	houseUseCase := usecases.NewHouseUseCase(s.db, houseRepo, lifecycle, s.manager, s.log)
	bookUseCase := usecases.NewBookUseCase(s.db, bookRepo, houseRepo, lifecycle, s.manager, s.log)
	reviewUseCase := usecases.NewReviewUseCase(s.db, reviewRepo, houseRepo, lifecycle, s.manager, s.log)
	photoUseCase := usecases.NewPhotoUseCase(houseRepo, lifecycle, store, s.cfg.MaxFileUpload, s.manager, s.log)
	authUseCase := usecases.NewAuthUseCase(userRepo, s.users, s.cfg.JWTSecret, s.cfg.JWTExpire, s.log)

	s.reconciler = services.NewRatingReconciler(s.db, houseRepo, lifecycle, s.cfg.RatingReconcileInterval, s.log)

	// Initialize handlers
	houseHandler := httpHandler.NewHouseHandler(houseUseCase, photoUseCase)
	bookHandler := httpHandler.NewBookHandler(bookUseCase)
	reviewHandler := httpHandler.NewReviewHandler(reviewUseCase)
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	wsHandler := handlers.NewWSHandler(s.manager, houseUseCase, s.log)
	cacheHandler := handlers.NewCacheHandler(s.users)

	am := middleware.NewAuthMiddleware(s.log, authUseCase)
	publishers := []gin.HandlerFunc{am.Protect(), am.Authorize(entities.RolePublisher, entities.RoleAdmin)}
	reviewers := []gin.HandlerFunc{am.Protect(), am.Authorize(entities.RoleUser, entities.RoleAdmin)}
	admins := []gin.HandlerFunc{am.Protect(), am.Authorize(entities.RoleAdmin)}

	api := s.app.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", am.Protect(), authHandler.Me)
		}

		houses := api.Group("/houses")
		{
			houses.GET("", houseHandler.GetHouses)
			houses.POST("", append(publishers, houseHandler.CreateHouse)...)
			houses.GET("/:id", houseHandler.GetHouse)
			houses.PUT("/:id", append(publishers, houseHandler.UpdateHouse)...)
			houses.DELETE("/:id", append(publishers, houseHandler.DeleteHouse)...)
			houses.PUT("/:id/photo", append(publishers, houseHandler.UploadPhoto)...)

			houses.GET("/:id/books", bookHandler.GetHouseBooks)
			houses.POST("/:id/books", append(publishers, bookHandler.AddBook)...)
			houses.GET("/:id/reviews", reviewHandler.GetHouseReviews)
			houses.POST("/:id/reviews", append(reviewers, reviewHandler.AddReview)...)

			houses.GET("/:id/events", wsHandler.HandleHouseEvents)
		}

		books := api.Group("/books")
		{
			books.GET("", bookHandler.GetBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", append(publishers, bookHandler.UpdateBook)...)
			books.DELETE("/:id", append(publishers, bookHandler.DeleteBook)...)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.GET("/:id", reviewHandler.GetReview)
			reviews.PUT("/:id", append(reviewers, reviewHandler.UpdateReview)...)
			reviews.DELETE("/:id", append(reviewers, reviewHandler.DeleteReview)...)
		}

		admin := api.Group("/admin", admins...)
		{
			admin.GET("/cache", cacheHandler.GetCacheStats)
			admin.DELETE("/cache", cacheHandler.FlushCache)
			admin.GET("/subscriptions", wsHandler.Subscriptions)
		}
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.app }

// Start serves until ctx is cancelled, then drains connections.
func (s *Server) Start(ctx context.Context) error {
	s.users.Start()
	defer s.users.Stop()
	s.reconciler.Start(ctx)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + s.cfg.Port,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	s.manager.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
