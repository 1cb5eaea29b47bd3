package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campuslibrary/internal/auth"
	"campuslibrary/internal/clock"
	"campuslibrary/internal/config"
	"campuslibrary/internal/handlers"
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
	"campuslibrary/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get generic DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Category{},
		&models.Subject{},
		&models.Book{},
		&models.BookLoan{},
		&models.Attendance{},
		&models.FeaturePost{},
	); err != nil {
		logrus.Fatalf("failed to migrate schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect redis: %v", err)
	}
	sessions := auth.NewStore(redisClient, cfg.SessionTTL)

	userRepo := repositories.NewUserRepository(db)
	authorRepo := repositories.NewAuthorRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	subjectRepo := repositories.NewSubjectRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewBookLoanRepository(db)
	attRepo := repositories.NewAttendanceRepository(db)
	postRepo := repositories.NewFeaturePostRepository(db)

	clk := clock.System{}

	deps := handlers.Deps{
		Sessions:   sessions,
		UserRepo:   userRepo,
		Users:      services.NewUserService(userRepo, sessions),
		Books:      services.NewBookService(bookRepo, authorRepo, categoryRepo, subjectRepo, loanRepo, userRepo),
		Catalog:    services.NewCatalogService(authorRepo, categoryRepo, subjectRepo),
		Loans:      services.NewLoanService(db, clk, userRepo, bookRepo, loanRepo),
		Attendance: services.NewAttendanceService(db, clk, userRepo, attRepo),
		Posts:      services.NewPostService(postRepo),
		Stats:      services.NewStatsService(userRepo, attRepo, bookRepo, authorRepo, categoryRepo, loanRepo, postRepo),
	}

	router := gin.Default()
	handlers.RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logrus.Infof("starting server on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("server error: %v", err)
	}
}
