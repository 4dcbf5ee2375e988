package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"Valo_Party/config"
	"Valo_Party/internal/handler"
	"Valo_Party/internal/model"
	"Valo_Party/internal/pkg"
	"Valo_Party/internal/repository/mysql"
	redisrepo "Valo_Party/internal/repository/redis"
	"Valo_Party/internal/router"
	"Valo_Party/internal/service"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := pkg.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := mysql.InitDB(cfg.Database.DSN()); err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(&model.Party{}); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	if err := redisrepo.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}

	producer, err := pkg.NewKafkaEventProducer(pkg.KafkaConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	if err != nil {
		logger.Fatal("Kafka 初始化失败", zap.Error(err))
	}

	// 事件同时走 Redis 广播频道（在线推送）和 Kafka（持久事件流）
	broker := &redisrepo.EventBroker{RDB: redisrepo.Client}
	publisher := service.MultiPublisher{broker, producer}

	repo := &mysql.PartyRepository{DB: mysql.DB}
	sched := service.NewLifecycleScheduler(clockwork.NewRealClock(), repo, publisher, logger)
	filter := pkg.NewModerationFilter(cfg.Moderation.ExtraWords)
	partySvc := service.NewPartyService(repo, publisher, sched, filter, logger)

	scraper := pkg.NewScraperClient(cfg.Scraper.BaseURL, &http.Client{Timeout: cfg.Scraper.Timeout})
	postsCache := &redisrepo.PostsCacheRepository{RDB: redisrepo.Client, TTL: cfg.Scraper.CacheTTL}
	postsSvc := service.NewPostsService(scraper, postsCache, logger)

	r := router.InitRouter(
		handler.NewPartyHandler(partySvc),
		handler.NewPostsHandler(postsSvc),
		handler.NewEventsHandler(broker, logger),
		cfg.Server.AllowOrigins,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info("服务启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务异常退出", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("收到退出信号，开始关停")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP 关停失败", zap.Error(err))
	}

	// 内存定时器随进程丢弃，未触发的迁移不会在重启后恢复
	sched.Stop()
	if err := producer.Close(); err != nil {
		logger.Warn("关闭 Kafka producer 失败", zap.Error(err))
	}
	if err := redisrepo.Close(); err != nil {
		logger.Warn("关闭 Redis 失败", zap.Error(err))
	}
}
