package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pilltrack/backend/config"
	"pilltrack/backend/internal/api/handler"
	"pilltrack/backend/internal/api/middleware"
	"pilltrack/backend/pkg/jwt"
	"pilltrack/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 仪表盘与统计
			authorized.GET("/dashboard", h.Dashboard.Get)
			authorized.GET("/analytics", h.Analytics.Get)

			// 药品模块
			medications := authorized.Group("/medications")
			{
				medications.GET("", h.Medication.List)
				medications.POST("", h.Medication.Create)
				medications.POST("/scan", h.Medication.Scan)
				medications.GET("/:id", h.Medication.Get)
				medications.PUT("/:id", h.Medication.Update)
				medications.DELETE("/:id", h.Medication.Delete)
			}

			// 提醒模块
			reminders := authorized.Group("/reminders")
			{
				reminders.GET("", h.Reminder.List)
				reminders.POST("", h.Reminder.Create)
				reminders.PUT("/settings", h.Reminder.UpdateSettings)
				reminders.PUT("/:id", h.Reminder.Update)
				reminders.DELETE("/:id", h.Reminder.Delete)
			}

			// 服药记录模块
			intakes := authorized.Group("/intakes")
			{
				intakes.GET("", h.Intake.List)
				intakes.PUT("/:id/status", h.Intake.UpdateStatus)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// 药房与订单模块
			pharmacies := authorized.Group("/pharmacies")
			{
				pharmacies.GET("", h.Pharmacy.List)
				pharmacies.GET("/:id", h.Pharmacy.Get)
			}
			orders := authorized.Group("/orders")
			{
				orders.GET("", h.Order.List)
				orders.POST("", h.Order.Create)
				orders.GET("/:id", h.Order.Get)
			}
			authorized.POST("/payments", h.Payment.Process)

			// 数据导出
			export := authorized.Group("/export")
			{
				export.GET("/adherence", h.Export.AdherenceReport)
				export.GET("/reminders.ics", h.Export.ReminderCalendar)
			}
		}
	}

	return r
}
