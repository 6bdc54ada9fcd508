package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nguyenbaduy011/IE221-be/config"
	"github.com/nguyenbaduy011/IE221-be/internal/api/handler"
	"github.com/nguyenbaduy011/IE221-be/internal/api/middleware"
	"github.com/nguyenbaduy011/IE221-be/pkg/jwt"
	"github.com/nguyenbaduy011/IE221-be/pkg/redis"
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

	staff := middleware.RoleAuth(jwt.RoleSupervisor, jwt.RoleAdmin)
	admin := middleware.RoleAuth(jwt.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 用户运维模块
		v1.POST("/users/:id/reset-password", admin, h.User.ResetPassword)

		// 科目模板模块
		subjects := v1.Group("/subjects")
		{
			subjects.GET("", h.Subject.ListSubjects)
			subjects.GET("/:id", h.Subject.GetSubject)
			subjects.POST("", staff, h.Subject.CreateSubject)
			subjects.PUT("/:id", staff, h.Subject.UpdateSubject)
			subjects.DELETE("/:id", staff, h.Subject.DeleteSubject)
		}

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:id", h.Course.GetCourse)
			courses.POST("", staff, h.Course.CreateCourse)
			courses.PUT("/:id", staff, h.Course.UpdateCourse)
			courses.DELETE("/:id", staff, h.Course.DeleteCourse)

			// 课程内科目编排
			courses.GET("/:id/subjects", h.Course.ListCourseSubjects)
			courses.POST("/:id/subjects", staff, h.Course.AttachSubject)
			courses.DELETE("/:id/subjects/:csId", staff, h.Course.DetachSubject)

			// 负责人管理
			courses.GET("/:id/supervisors", h.Course.ListSupervisors)
			courses.POST("/:id/supervisors", staff, h.Course.AddSupervisor)
			courses.DELETE("/:id/supervisors/:supervisorId", staff, h.Course.RemoveSupervisor)

			// 学员注册
			courses.GET("/:id/trainees", staff, h.Enrollment.ListTrainees)
			courses.POST("/:id/trainees", staff, h.Enrollment.Enroll)
			courses.DELETE("/:id/trainees/:userId", staff, h.Enrollment.RemoveTrainee)

			// 导出
			courses.GET("/:id/export/progress", staff, h.Export.ExportProgressMatrix)
			courses.GET("/:id/export/schedule.ics", h.Export.ExportSchedule)
		}

		// 学习进度模块
		userSubjects := v1.Group("/user-subjects")
		{
			userSubjects.GET("/me", h.Progress.ListMyProgress)
			userSubjects.GET("/:id", h.Progress.GetUserSubject)
			userSubjects.POST("/:id/start", h.Progress.StartSubject)
			userSubjects.POST("/:id/finish", h.Progress.FinishSubject)

			// 评估
			userSubjects.POST("/:id/assess", staff, h.Assessment.Assess)
			userSubjects.GET("/:id/comments", h.Assessment.ListComments)
		}

		v1.PUT("/user-tasks/:id", h.Progress.ToggleTask)

		// 日报模块
		reports := v1.Group("/daily-reports")
		{
			reports.GET("", h.DailyReport.ListReports)
			reports.POST("", h.DailyReport.CreateReport)
			reports.GET("/:id", h.DailyReport.GetReport)
			reports.PUT("/:id", h.DailyReport.UpdateReport)
			reports.DELETE("/:id", h.DailyReport.DeleteReport)
		}

		// 统计模块
		stats := v1.Group("/stats")
		stats.Use(staff)
		{
			stats.GET("/overview", h.Stats.Overview)
			stats.GET("/activity", h.Stats.RecentActivity)
		}
	}

	return r
}
