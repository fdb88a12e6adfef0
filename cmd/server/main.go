package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	chathandler "github.com/fidel-otieno2/KinKeep.app/internal/chat/handler"
	chatrepo "github.com/fidel-otieno2/KinKeep.app/internal/chat/repository"
	chatservice "github.com/fidel-otieno2/KinKeep.app/internal/chat/service"
	"github.com/fidel-otieno2/KinKeep.app/internal/config"
	contenthandler "github.com/fidel-otieno2/KinKeep.app/internal/content/handler"
	contentrepo "github.com/fidel-otieno2/KinKeep.app/internal/content/repository"
	contentservice "github.com/fidel-otieno2/KinKeep.app/internal/content/service"
	familyhandler "github.com/fidel-otieno2/KinKeep.app/internal/family/handler"
	familyrepo "github.com/fidel-otieno2/KinKeep.app/internal/family/repository"
	familyservice "github.com/fidel-otieno2/KinKeep.app/internal/family/service"
	identityhandler "github.com/fidel-otieno2/KinKeep.app/internal/identity/handler"
	identityrepo "github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	identityservice "github.com/fidel-otieno2/KinKeep.app/internal/identity/service"
	socialhandler "github.com/fidel-otieno2/KinKeep.app/internal/social/handler"
	socialrepo "github.com/fidel-otieno2/KinKeep.app/internal/social/repository"
	socialservice "github.com/fidel-otieno2/KinKeep.app/internal/social/service"
	socialstore "github.com/fidel-otieno2/KinKeep.app/internal/social/store"
	storyhandler "github.com/fidel-otieno2/KinKeep.app/internal/story/handler"
	storyrepo "github.com/fidel-otieno2/KinKeep.app/internal/story/repository"
	storyservice "github.com/fidel-otieno2/KinKeep.app/internal/story/service"
	uploadhandler "github.com/fidel-otieno2/KinKeep.app/internal/upload/handler"
	uploadservice "github.com/fidel-otieno2/KinKeep.app/internal/upload/service"
	"github.com/fidel-otieno2/KinKeep.app/pkg/database"
	"github.com/fidel-otieno2/KinKeep.app/pkg/jwt"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
	"github.com/fidel-otieno2/KinKeep.app/pkg/storage"

	chatdomain "github.com/fidel-otieno2/KinKeep.app/internal/chat/domain"
	contentdomain "github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	familydomain "github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	storydomain "github.com/fidel-otieno2/KinKeep.app/internal/story/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/story/enhancer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log.Init(log.Config{Level: cfg.Log.Level, ServiceName: "kinkeep"})
	logger := log.L()

	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db,
		&identitydomain.UserModel{},
		&socialdomain.FollowModel{},
		&socialdomain.CloseFriendModel{},
		&contentdomain.PostModel{},
		&contentdomain.LikeModel{},
		&contentdomain.SavedPostModel{},
		&contentdomain.PostCommentModel{},
		&familydomain.FamilyModel{},
		&familydomain.FamilyMemberModel{},
		&storydomain.StoryModel{},
		&storydomain.StoryCommentModel{},
		&chatdomain.ConversationModel{},
		&chatdomain.ParticipantModel{},
		&chatdomain.MessageModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessDuration, cfg.JWT.RefreshDuration, cfg.JWT.Issuer)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Repositories.
	userRepo := identityrepo.NewGormUserRepository(db)
	graphRepo := socialrepo.NewGormGraphRepository(db)
	postRepo := contentrepo.NewGormPostRepository(db)
	familyRepo := familyrepo.NewGormFamilyRepository(db)
	storyRepo := storyrepo.NewGormStoryRepository(db)
	conversationRepo := chatrepo.NewGormConversationRepository(db)

	// Follower counts cache: on when redis is configured, off otherwise.
	var countStore socialstore.CountStore
	if cfg.Redis.Address != "" {
		redisStore, err := socialstore.NewRedisCountStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.Prefix, cfg.Cache.TTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		countStore = redisStore
		logger.Info().Str("address", cfg.Redis.Address).Msg("redis count cache enabled")
	}

	mediaStore, err := buildMediaStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise media storage")
	}

	storyEnhancer := enhancer.NewOpenAIEnhancer(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	if storyEnhancer == nil {
		logger.Warn().Msg("OPENAI_API_KEY not set, story enhancement disabled")
	}

	// Services.
	socialSvc := socialservice.NewSocialService(graphRepo, userRepo, countStore)
	identitySvc := identityservice.NewIdentityService(userRepo, tokens, socialSvc)
	contentSvc := contentservice.NewContentService(postRepo, userRepo)
	familySvc := familyservice.NewFamilyService(familyRepo)
	var storyEnh enhancer.Enhancer
	if storyEnhancer != nil {
		storyEnh = storyEnhancer
	}
	storySvc := storyservice.NewStoryService(storyRepo, familySvc, storyEnh)
	chatSvc := chatservice.NewChatService(conversationRepo, userRepo)
	uploadSvc := uploadservice.NewUploadService(mediaStore, cfg.Media.UploadTimeout, cfg.Media.URLExpiry)

	// Router.
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(log.GinMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	identityhandler.NewHandler(identitySvc, authMiddleware).RegisterRoutes(api)
	socialhandler.NewHandler(socialSvc, authMiddleware).RegisterRoutes(api)
	contenthandler.NewHandler(contentSvc, authMiddleware).RegisterRoutes(api)
	familyhandler.NewHandler(familySvc, authMiddleware).RegisterRoutes(api)
	storyhandler.NewHandler(storySvc, authMiddleware).RegisterRoutes(api)
	chathandler.NewHandler(chatSvc, authMiddleware).RegisterRoutes(api)
	uploadhandler.NewHandler(uploadSvc, authMiddleware).RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}

func buildMediaStore(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Media.Backend {
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Storage(ctx, cfg.Media.S3)
	case "local":
		return storage.NewLocalStorage(cfg.Media.Local)
	default:
		return nil, fmt.Errorf("unsupported media backend: %s", cfg.Media.Backend)
	}
}
