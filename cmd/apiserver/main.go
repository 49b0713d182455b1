package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ferrohub/ferrohub/internal/apiserver/cache"
	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/apiserver/handler"
	"github.com/ferrohub/ferrohub/internal/apiserver/middleware"
	"github.com/ferrohub/ferrohub/internal/apiserver/rbac"
	"github.com/ferrohub/ferrohub/internal/auth/jwt"
	"github.com/ferrohub/ferrohub/internal/common/config"
	"github.com/ferrohub/ferrohub/pkg/logger"
	"github.com/ferrohub/ferrohub/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "FerroHub API Server",
		Long:  `FerroHub API Server provides the hardware-store management REST API`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := database.Seed(ctx, db, cfg.SuperAdmin.Email, cfg.SuperAdmin.Password); err != nil {
		log.Fatal("failed to seed database", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		log.Fatal("failed to initialize jwt service", zap.Error(err))
	}

	store, err := cache.NewCache(&cfg.Cache, log)
	if err != nil {
		log.Fatal("failed to initialize cache",
			zap.String("type", cfg.Cache.Type),
			zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	checker := rbac.NewChecker(db, log)
	resolver := middleware.NewResolver(db)
	h := handler.NewHandler(db, jwtService, checker, resolver, store, log, cfg)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
