package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pilltrack/backend/config"
	"pilltrack/backend/internal/api/handler"
	"pilltrack/backend/internal/api/router"
	"pilltrack/backend/internal/model"
	"pilltrack/backend/internal/repository"
	"pilltrack/backend/internal/scheduler"
	"pilltrack/backend/internal/service"
	"pilltrack/backend/pkg/database"
	"pilltrack/backend/pkg/jwt"
	applogger "pilltrack/backend/pkg/logger"
	"pilltrack/backend/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单功能将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 初始化提醒调度器（cron 使用配置的本地时区）
	loc, err := time.LoadLocation(cfg.Reminder.Timezone)
	if err != nil {
		logger.Fatal("提醒时区无效", zap.Error(err))
	}
	cronRunner := cron.New(cron.WithLocation(loc))

	repo := repository.NewRepository(db)

	// 触发器到点回调：物化剂量事件并生成通知。
	// IntakeService 在调度器之后才能创建，用间接引用打破初始化环。
	var intakeSvc *service.IntakeService
	onFire := func(reminder model.Reminder, firedAt time.Time) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		intakeSvc.RecordTrigger(ctx, reminder, firedAt)
	}

	notifier := scheduler.NewCronNotifier(cronRunner, onFire, true, logger)
	sched := scheduler.New(notifier, scheduler.NewMemoryBindingStore(), logger)

	// 7. 依赖注入: Repository → Service → Handler
	svc := service.New(cfg, repo, sched, jwtMgr, rdb, logger)
	intakeSvc = svc.Intake
	h := handler.NewHandler(svc)

	// 7.1 启动时从库中重建全部启用提醒的触发器
	// （cron 条目只存在于进程内，重启后以数据库为准全量恢复）
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		reminders, err := repo.Reminder.ListAllEnabled(ctx)
		cancel()
		if err != nil {
			logger.Fatal("加载启用提醒失败", zap.Error(err))
		}
		sched.ScheduleAll(reminders)
		logger.Info("提醒触发器已重建", zap.Int("count", len(reminders)))
	}

	// 7.2 注册漏服巡检任务
	sweepSpec := fmt.Sprintf("@every %s", cfg.Reminder.SweepEvery)
	if _, err := cronRunner.AddFunc(sweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		svc.Intake.SweepMissed(ctx)
	}); err != nil {
		logger.Fatal("注册漏服巡检失败", zap.Error(err))
	}

	cronRunner.Start()

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 停止 cron 并等待进行中的触发回调完成
	<-cronRunner.Stop().Done()

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("应用已退出")
}
