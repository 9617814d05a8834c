package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"elearn-backend/internal/config"
	infraCache "elearn-backend/internal/infrastructure/cache"
	"elearn-backend/internal/infrastructure/database"
	"elearn-backend/internal/ordering"
	"elearn-backend/pkg/cache"
	"elearn-backend/pkg/jwt"

	courseHandler "elearn-backend/internal/domains/course/handler"
	courseRepo "elearn-backend/internal/domains/course/repository"
	courseService "elearn-backend/internal/domains/course/service"
	"elearn-backend/internal/domains/enrollment"
	enrollmentHandler "elearn-backend/internal/domains/enrollment/handler"
	enrollmentRepo "elearn-backend/internal/domains/enrollment/repository"
	enrollmentService "elearn-backend/internal/domains/enrollment/service"
	lessonHandler "elearn-backend/internal/domains/lesson/handler"
	lessonRepo "elearn-backend/internal/domains/lesson/repository"
	lessonService "elearn-backend/internal/domains/lesson/service"
	"elearn-backend/internal/domains/teacher"
	teacherHandler "elearn-backend/internal/domains/teacher/handler"
	teacherRepo "elearn-backend/internal/domains/teacher/repository"
	teacherService "elearn-backend/internal/domains/teacher/service"
	"elearn-backend/internal/domains/textbook"
	textbookHandler "elearn-backend/internal/domains/textbook/handler"
	textbookRepo "elearn-backend/internal/domains/textbook/repository"
	textbookService "elearn-backend/internal/domains/textbook/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then ordering stores, then repositories, services and
// handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// One generic position store and reconciler per ordered table.
	// The stores are exposed directly so the worker can enumerate
	// scopes for the nightly compaction job.
	CourseOrderStore   *ordering.PostgresStore
	LessonOrderStore   *ordering.PostgresStore
	TextbookOrderStore *ordering.PostgresStore
	TeacherOrderStore  *ordering.PostgresStore

	CourseOrdering   *ordering.Service
	LessonOrdering   *ordering.Service
	TextbookOrdering *ordering.Service
	TeacherOrdering  *ordering.Service

	CourseRepo     courseRepo.CourseRepository
	LessonRepo     lessonRepo.LessonRepository
	TextbookRepo   textbook.TextbookRepository
	TeacherRepo    teacher.TeacherRepository
	EnrollmentRepo enrollment.EnrollmentRepository

	CourseService     courseService.CourseService
	LessonService     lessonService.LessonService
	TextbookService   textbook.TextbookService
	TeacherService    teacher.TeacherService
	EnrollmentService enrollment.EnrollmentService

	CourseHandler     *courseHandler.CourseHandler
	LessonHandler     *lessonHandler.LessonHandler
	TextbookHandler   *textbookHandler.TextbookHandler
	TeacherHandler    *teacherHandler.TeacherHandler
	EnrollmentHandler *enrollmentHandler.EnrollmentHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	log.Println("[Container] Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	log.Println("[Container] Connecting to PostgreSQL...")
	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	log.Println("[Container] Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Ordering stores. One TableSpec per table carrying a position
	// column; teachers have no scope column because the directory is a
	// single global list.
	c.CourseOrderStore = ordering.NewPostgresStore(db.Pool, ordering.TableSpec{
		Table:       "courses",
		ScopeColumn: "owner_id",
	})
	c.LessonOrderStore = ordering.NewPostgresStore(db.Pool, ordering.TableSpec{
		Table:       "lessons",
		ScopeColumn: "course_id",
	})
	c.TextbookOrderStore = ordering.NewPostgresStore(db.Pool, ordering.TableSpec{
		Table:       "textbooks",
		ScopeColumn: "owner_id",
	})
	c.TeacherOrderStore = ordering.NewPostgresStore(db.Pool, ordering.TableSpec{
		Table: "teachers",
	})

	c.CourseOrdering = ordering.NewService(c.CourseOrderStore)
	c.LessonOrdering = ordering.NewService(c.LessonOrderStore)
	c.TextbookOrdering = ordering.NewService(c.TextbookOrderStore)
	c.TeacherOrdering = ordering.NewService(c.TeacherOrderStore)

	// Repositories
	c.CourseRepo = courseRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.LessonRepo = lessonRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.TextbookRepo = textbookRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.TeacherRepo = teacherRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.EnrollmentRepo = enrollmentRepo.NewPostgresRepository(db.Pool)

	// Services
	c.CourseService = courseService.NewCourseService(c.CourseRepo, c.CourseOrdering)
	c.LessonService = lessonService.NewLessonService(c.LessonRepo, c.LessonOrdering)
	c.TextbookService = textbookService.NewTextbookService(c.TextbookRepo, c.TextbookOrdering)
	c.TeacherService = teacherService.NewTeacherService(c.TeacherRepo, c.TeacherOrdering)
	c.EnrollmentService = enrollmentService.NewEnrollmentService(c.EnrollmentRepo, c.CourseRepo)

	// Handlers
	c.CourseHandler = courseHandler.NewCourseHandler(c.CourseService)
	c.LessonHandler = lessonHandler.NewLessonHandler(c.LessonService)
	c.TextbookHandler = textbookHandler.NewTextbookHandler(c.TextbookService)
	c.TeacherHandler = teacherHandler.NewTeacherHandler(c.TeacherService)
	c.EnrollmentHandler = enrollmentHandler.NewEnrollmentHandler(c.EnrollmentService)

	log.Println("[Container] Ready")
	return c, nil
}

// Cleanup releases infrastructure connections. Call on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok && rc != nil {
		if err := rc.Close(); err != nil {
			log.Printf("[Container] Redis close failed: %v", err)
		}
	}
	log.Println("[Container] Cleaned up")
}
