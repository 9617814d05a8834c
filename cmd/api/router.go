package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"elearn-backend/internal/shared/middleware"
	"elearn-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCourseRoutes(v1, c)
		setupTextbookRoutes(v1, c)
		setupTeacherRoutes(v1, c)
		setupEnrollmentRoutes(v1, c)
	}

	return router
}

// Courses are owner-scoped: every route requires an authenticated caller
// and the service layer enforces ownership. Lessons hang off a course and
// are curated by admins; any authenticated user may read them.
func setupCourseRoutes(v1 *gin.RouterGroup, c *container.Container) {
	courses := v1.Group("/courses")
	courses.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		courses.POST("", c.CourseHandler.Create)
		courses.GET("", c.CourseHandler.List)
		courses.PUT("/reorder", c.CourseHandler.Reorder)
		courses.GET("/:id", c.CourseHandler.GetByID)
		courses.PUT("/:id", c.CourseHandler.Update)
		courses.DELETE("/:id", c.CourseHandler.Delete)
		courses.POST("/:id/move-up", c.CourseHandler.MoveUp)
		courses.POST("/:id/move-down", c.CourseHandler.MoveDown)

		courses.POST("/:id/enroll", c.EnrollmentHandler.Enroll)

		courses.GET("/:id/lessons", c.LessonHandler.List)
		courses.GET("/:id/lessons/:lessonId", c.LessonHandler.GetByID)

		admin := courses.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/:id/lessons", c.LessonHandler.Create)
			admin.PUT("/:id/lessons/reorder", c.LessonHandler.Reorder)
			admin.PUT("/:id/lessons/:lessonId", c.LessonHandler.Update)
			admin.DELETE("/:id/lessons/:lessonId", c.LessonHandler.Delete)
			admin.POST("/:id/lessons/:lessonId/move-up", c.LessonHandler.MoveUp)
			admin.POST("/:id/lessons/:lessonId/move-down", c.LessonHandler.MoveDown)
		}
	}
}

func setupTextbookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	textbooks := v1.Group("/textbooks")
	textbooks.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		textbooks.POST("", c.TextbookHandler.Create)
		textbooks.GET("", c.TextbookHandler.List)
		textbooks.PUT("/reorder", c.TextbookHandler.Reorder)
		textbooks.GET("/:id", c.TextbookHandler.GetByID)
		textbooks.PUT("/:id", c.TextbookHandler.Update)
		textbooks.DELETE("/:id", c.TextbookHandler.Delete)
		textbooks.POST("/:id/move-up", c.TextbookHandler.MoveUp)
		textbooks.POST("/:id/move-down", c.TextbookHandler.MoveDown)
	}
}

// The teacher directory is readable by anyone; curation is admin-only.
func setupTeacherRoutes(v1 *gin.RouterGroup, c *container.Container) {
	teachers := v1.Group("/teachers")
	{
		teachers.GET("", c.TeacherHandler.List)
		teachers.GET("/:id", c.TeacherHandler.GetByID)

		admin := teachers.Group("")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.POST("", c.TeacherHandler.Create)
			admin.PUT("/reorder", c.TeacherHandler.Reorder)
			admin.PUT("/:id", c.TeacherHandler.Update)
			admin.DELETE("/:id", c.TeacherHandler.Delete)
			admin.POST("/:id/move-up", c.TeacherHandler.MoveUp)
			admin.POST("/:id/move-down", c.TeacherHandler.MoveDown)
		}
	}
}

func setupEnrollmentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	enrollments := v1.Group("/enrollments")
	enrollments.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		enrollments.GET("", c.EnrollmentHandler.ListMine)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "down"
			status = http.StatusServiceUnavailable
		}

		overall := "UP"
		if status != http.StatusOK {
			overall = "DEGRADED"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
