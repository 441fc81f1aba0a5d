package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	tenant     *repository.TenantRepository
	profile    *repository.ProfileRepository
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	content    *repository.ContentItemRepository
	assignment *repository.AssignmentRepository
	cohort     *repository.CohortRepository
	progress   *repository.ProgressRepository
	audit      *repository.AuditRepository
}

type services struct {
	audit      *service.AuditService
	auth       *service.AuthService
	storage    *service.StorageService
	course     *service.CourseService
	module     *service.ModuleService
	content    *service.ContentService
	assignment *service.AssignmentService
	cohort     *service.CohortService
	user       *service.UserService
	learn      *service.LearnService
	stream     *service.StreamService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	module     *controller.ModuleController
	content    *controller.ContentController
	assignment *controller.AssignmentController
	cohort     *controller.CohortController
	user       *controller.UserController
	learn      *controller.LearnController
	progress   *controller.ProgressController
	audit      *controller.AuditController
	stream     *controller.StreamController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		tenant:     repository.NewTenantRepository(db),
		profile:    repository.NewProfileRepository(db),
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		content:    repository.NewContentItemRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		cohort:     repository.NewCohortRepository(db),
		progress:   repository.NewProgressRepository(db),
		audit:      repository.NewAuditRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.audit = service.NewAuditService(repos.audit)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.profile, cfg)
	s.course = service.NewCourseService(repos.course, s.audit)
	s.module = service.NewModuleService(repos.module, repos.course, s.audit)
	s.content = service.NewContentService(repos.content, repos.module, s.storage, s.audit)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.profile, repos.course, s.audit)
	s.cohort = service.NewCohortService(repos.cohort, repos.assignment, repos.profile, repos.course, s.audit)
	s.user = service.NewUserService(repos.profile, repos.tenant, s.audit)
	s.learn = service.NewLearnService(repos.assignment, repos.course, repos.module, repos.content, repos.progress, repos.profile)
	s.stream = service.NewStreamService(repos.content, repos.module, repos.assignment, s.audit, s.storage, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		module:     controller.NewModuleController(s.module),
		content:    controller.NewContentController(s.content),
		assignment: controller.NewAssignmentController(s.assignment),
		cohort:     controller.NewCohortController(s.cohort),
		user:       controller.NewUserController(s.user),
		learn:      controller.NewLearnController(s.learn),
		progress:   controller.NewProgressController(s.learn),
		audit:      controller.NewAuditController(s.audit),
		stream:     controller.NewStreamController(s.stream),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
