package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KaanYilmazz/117RosterMaker/config"
	"github.com/KaanYilmazz/117RosterMaker/internal/api/handler"
	"github.com/KaanYilmazz/117RosterMaker/internal/api/middleware"
	"github.com/KaanYilmazz/117RosterMaker/pkg/jwt"
	"github.com/KaanYilmazz/117RosterMaker/pkg/redis"
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

			// 员工模块：查看开放，增删改仅管理岗
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.ListEmployees)
				employees.GET("/:id", h.Employee.GetEmployee)
				employees.POST("", middleware.ManagementOnly(), h.Employee.CreateEmployee)
				employees.PUT("/:id", middleware.ManagementOnly(), h.Employee.UpdateEmployee)
				employees.DELETE("/:id", middleware.ManagementOnly(), h.Employee.DeleteEmployee)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.ListShifts)
				shifts.GET("/:id", h.Shift.GetShift)
				shifts.POST("", middleware.ManagementOnly(), h.Shift.CreateShift)
				shifts.PUT("/:id", middleware.ManagementOnly(), h.Shift.UpdateShift)
				shifts.DELETE("/:id", middleware.ManagementOnly(), h.Shift.DeleteShift)
			}

			// 空闲时间模块：员工可提报自己的空闲，写入口不限管理岗
			availabilities := authorized.Group("/availabilities")
			{
				availabilities.GET("", h.Availability.ListAvailabilities)
				availabilities.PUT("", h.Availability.UpsertAvailability)
			}

			// 排班模块：查看开放，生成与手工修改仅管理岗
			roster := authorized.Group("/roster")
			{
				roster.GET("", h.Roster.GetRoster)
				roster.GET("/hours", h.Roster.HoursReport)
				roster.GET("/shifts/:id/candidates", h.Roster.ListCandidates)
				roster.POST("/generate", middleware.ManagementOnly(), h.Roster.GenerateRoster)
				roster.POST("/swap", middleware.ManagementOnly(), h.Roster.SwapEntries)
				roster.POST("/entries", middleware.ManagementOnly(), h.Roster.AddEntry)
				roster.DELETE("/entries/:id", middleware.ManagementOnly(), h.Roster.RemoveEntry)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/roster.xlsx", h.Export.ExportRoster)
				export.GET("/employees/:id/roster.ics", h.Export.ExportEmployeeICS)
			}
		}
	}

	return r
}

