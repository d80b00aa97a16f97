package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	announcementHandler "library-backend/internal/domains/announcement/handler"
	announcementRepo "library-backend/internal/domains/announcement/repository"
	announcementService "library-backend/internal/domains/announcement/service"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	borrowHandler "library-backend/internal/domains/borrow/handler"
	borrowRepo "library-backend/internal/domains/borrow/repository"
	borrowService "library-backend/internal/domains/borrow/service"
	entryHandler "library-backend/internal/domains/entry/handler"
	entryRepo "library-backend/internal/domains/entry/repository"
	entryService "library-backend/internal/domains/entry/service"
	filesHandler "library-backend/internal/domains/files/handler"
	hoursHandler "library-backend/internal/domains/hours/handler"
	hoursRepo "library-backend/internal/domains/hours/repository"
	hoursService "library-backend/internal/domains/hours/service"
	librarianHandler "library-backend/internal/domains/librarian/handler"
	librarianRepo "library-backend/internal/domains/librarian/repository"
	librarianService "library-backend/internal/domains/librarian/service"
	reportHandler "library-backend/internal/domains/report/handler"
	reportRepo "library-backend/internal/domains/report/repository"
	reportService "library-backend/internal/domains/report/service"
	scanHandler "library-backend/internal/domains/scan/handler"
	scanService "library-backend/internal/domains/scan/service"
	studentHandler "library-backend/internal/domains/student/handler"
	studentRepo "library-backend/internal/domains/student/repository"
	studentService "library-backend/internal/domains/student/service"
)

// Container is the root of the dependency graph. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	HoursRepo        hoursRepo.RepositoryInterface
	EntryRepo        entryRepo.RepositoryInterface
	BookRepo         bookRepo.RepositoryInterface
	BorrowRepo       borrowRepo.RepositoryInterface
	StudentRepo      studentRepo.RepositoryInterface
	LibrarianRepo    librarianRepo.RepositoryInterface
	AnnouncementRepo announcementRepo.RepositoryInterface
	ReportRepo       reportRepo.RepositoryInterface

	HoursService        hoursService.ServiceInterface
	EntryService        entryService.ServiceInterface
	BookService         bookService.ServiceInterface
	BorrowService       borrowService.ServiceInterface
	ScanService         scanService.ServiceInterface
	StudentService      studentService.ServiceInterface
	LibrarianService    librarianService.ServiceInterface
	AnnouncementService announcementService.ServiceInterface
	ReportService       reportService.ServiceInterface

	HoursHandler        *hoursHandler.Handler
	EntryHandler        *entryHandler.Handler
	BookHandler         *bookHandler.Handler
	BorrowHandler       *borrowHandler.Handler
	ScanHandler         *scanHandler.Handler
	StudentHandler      *studentHandler.Handler
	LibrarianHandler    *librarianHandler.Handler
	AnnouncementHandler *announcementHandler.Handler
	ReportHandler       *reportHandler.Handler
	FilesHandler        *filesHandler.Handler
}

// NewContainer builds and initializes the whole dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// The hours and occupancy caches are best-effort; a cold
			// Redis just means every read hits Postgres
			log.Printf("[Container] Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init minio storage: %w", err)
	}
	c.Storage = minioStorage

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.HoursRepo = hoursRepo.NewRepository(pool)
	c.EntryRepo = entryRepo.NewRepository(pool)
	c.BookRepo = bookRepo.NewRepository(pool)
	c.BorrowRepo = borrowRepo.NewRepository(pool)
	c.StudentRepo = studentRepo.NewRepository(pool)
	c.LibrarianRepo = librarianRepo.NewRepository(pool)
	c.AnnouncementRepo = announcementRepo.NewRepository(pool)
	c.ReportRepo = reportRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.HoursService = hoursService.NewService(c.HoursRepo, c.Cache)
	c.EntryService = entryService.NewService(c.EntryRepo, c.Cache)
	c.BookService = bookService.NewService(c.BookRepo)
	c.BorrowService = borrowService.NewService(c.BorrowRepo, c.Config.Library)
	c.ScanService = scanService.NewService(c.HoursService, c.EntryService)
	c.StudentService = studentService.NewService(c.StudentRepo, c.JWTManager)
	c.LibrarianService = librarianService.NewService(c.LibrarianRepo, c.JWTManager)
	c.AnnouncementService = announcementService.NewService(c.AnnouncementRepo)
	c.ReportService = reportService.NewService(c.ReportRepo)
}

func (c *Container) initHandlers() {
	c.HoursHandler = hoursHandler.NewHandler(c.HoursService)
	c.EntryHandler = entryHandler.NewHandler(c.EntryService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.BorrowHandler = borrowHandler.NewHandler(c.BorrowService)
	c.ScanHandler = scanHandler.NewHandler(c.ScanService)
	c.StudentHandler = studentHandler.NewHandler(c.StudentService)
	c.LibrarianHandler = librarianHandler.NewHandler(c.LibrarianService)
	c.AnnouncementHandler = announcementHandler.NewHandler(c.AnnouncementService)
	c.ReportHandler = reportHandler.NewHandler(c.ReportService)
	c.FilesHandler = filesHandler.NewHandler(c.Storage, c.BookService, c.StudentService)
}

// Cleanup releases infrastructure resources
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[Container] Failed to close Redis: %v", err)
		}
	}
}
