package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database"

	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	libraryHandler "library-backend/internal/domains/library/handler"
	libraryRepo "library-backend/internal/domains/library/repository"
	libraryService "library-backend/internal/domains/library/service"

	"library-backend/pkg/logger"
)

// Container holds every long-lived dependency of the API process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.PostgresDB

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo  authorRepo.RepositoryInterface
	BookRepo    bookRepo.RepositoryInterface
	LibraryRepo libraryRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService  authorService.ServiceInterface
	BookService    bookService.ServiceInterface
	LibraryService libraryService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler  *authorHandler.Handler
	BookHandler    *bookHandler.Handler
	LibraryHandler *libraryHandler.Handler
}

// NewContainer builds the dependency graph in order:
// config, database, repositories, services, handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	if cfg.Database.MigrateOnBoot {
		migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
		err := database.Migrate(migrateCtx, dbConfig)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(connectCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3-5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
	c.LibraryRepo = libraryRepo.NewPostgresRepository(c.DB.Pool, c.Config.Library.PageSize)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewService(c.AuthorRepo)
	c.BookService = bookService.NewService(c.BookRepo)
	c.LibraryService = libraryService.NewService(c.LibraryRepo)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.LibraryHandler = libraryHandler.NewHandler(c.LibraryService)
}

// Cleanup releases the database pool. Safe to call more than once.
func (c *Container) Cleanup() {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		logger.Error("close database", err)
		return
	}
	logger.Info("database connections closed", nil)
}
