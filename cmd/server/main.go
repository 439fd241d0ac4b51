package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "click-tracker/docs"
	"click-tracker/internal/config"
	"click-tracker/internal/handler"
	"click-tracker/internal/identity"
	"click-tracker/internal/middleware"
	"click-tracker/internal/recorder"
	"click-tracker/internal/report"
	"click-tracker/internal/repository"
	"click-tracker/internal/web"
	"click-tracker/pkg/database"
	"click-tracker/pkg/logger"
	"click-tracker/pkg/redis"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Click Tracker API
// @version 1.0
// @description 联盟链接点击跟踪: 参数校验, 后台记录点击, 302 跳转
// @host localhost:8080
// @BasePath /
// @securityDefinitions.basic BasicAuth

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.Options{
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
		Debug:      cfg.App.Mode != "production",
	})
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := logger.Sugar

	db, err := database.Open(cfg.Database)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Infof("✅ 数据库连接成功 (%s)", cfg.Database.Driver)

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewRedisClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败, 限流使用内存模式: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	if cfg.Tracking.IPHashSalt == "" {
		sugaredLogger.Warnf("未配置 IP_HASH_SALT, 使用默认盐 %q, IP 哈希的隐私保护较弱", identity.DefaultSalt)
	}
	if cfg.Admin.User == "" || cfg.Admin.Password == "" {
		sugaredLogger.Warn("未配置 ADMIN_USER/ADMIN_PASS, 后台将拒绝所有访问")
	}

	clickRepo := repository.NewClickRepository(db)
	clickRecorder := recorder.New(clickRepo, sugaredLogger, time.Duration(cfg.Tracking.WriteTimeout)*time.Second)
	reportService := report.NewService(clickRepo)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.SetHTMLTemplate(web.Templates())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.Use(middleware.RateLimit(rdb, &cfg.RateLimit))

	clickHandler := handler.NewClickHandler(clickRecorder, cfg.Tracking.IPHashSalt, cfg.Tracking.Affiliate, sugaredLogger)
	adminHandler := handler.NewAdminHandler(reportService, sugaredLogger)
	adminAuth := middleware.BasicAuth(cfg.Admin.User, cfg.Admin.Password, sugaredLogger.Named("admin_auth"))

	registerRoutes(router, clickHandler, adminHandler, adminAuth)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
		sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugaredLogger.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		sugaredLogger.Errorf("服务关闭异常: %v", err)
	}
	// 尽量等待后台写入, 超时后未完成的点击记录直接丢弃
	if err := clickRecorder.Wait(ctx); err != nil {
		sugaredLogger.Warnf("仍有点击记录未写入, 已放弃: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	sugaredLogger.Info("服务已退出")
}

func registerRoutes(
	router *gin.Engine,
	clickHandler *handler.ClickHandler,
	adminHandler *handler.AdminHandler,
	adminAuth gin.HandlerFunc,
) {
	router.GET("/", clickHandler.IndexPage)
	router.GET("/builder", clickHandler.BuilderPage)

	router.GET("/health", clickHandler.HealthCheck)
	router.GET("/redirect", clickHandler.Redirect)
	router.GET("/postback", clickHandler.Postback)
	router.POST("/postback", clickHandler.Postback)

	// 兼容旧链接格式
	api := router.Group("/api")
	{
		api.GET("/health", clickHandler.HealthCheck)
		api.GET("/r", clickHandler.Redirect)
		api.GET("/postback", clickHandler.Postback)
		api.POST("/postback", clickHandler.Postback)
	}

	admin := router.Group("/admin")
	admin.Use(adminAuth)
	{
		admin.GET("", adminHandler.Dashboard)
		admin.GET("/api/report", adminHandler.ReportJSON)
	}
}
