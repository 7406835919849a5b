package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"learnhub/internal/config"
	mongodb "learnhub/internal/database/mongo"
	redisdb "learnhub/internal/database/redis"
	"learnhub/internal/events"
	"learnhub/internal/handlers"
	"learnhub/internal/repository"
	"learnhub/internal/service"
	"learnhub/pkg/discovery"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/joho/godotenv"
)

func setupLogging() (*os.File, error) {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		// Log to stderr when no directory is configured.
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return file, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %s", err)
	}

	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.New()
	if cfg.JWTSecret == "" && cfg.AuthMethod == config.AuthMethodJWT {
		log.Fatal("JWT_SECRET is required when AUTH_METHOD=JWT")
	}

	mongoClient, db, err := mongodb.Connect(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	defer mongodb.Disconnect(mongoClient)

	redisClient := redisdb.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	publisher, err := events.NewEventPublisher(cfg.RabbitURI, cfg.RabbitExchange)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	parentRepo := repository.NewParentStudentRepository(db)
	otpRepo := repository.NewOTPTokenRepository(mongoClient, db)
	resetRepo := repository.NewPasswordResetTokenRepository(mongoClient, db)
	courseRepo := repository.NewCourseRepository(db)
	classRepo := repository.NewClassRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	redisRepo := repository.NewRedisRepository(redisClient)

	// Services.
	jwtService := service.NewJWTService(cfg)
	sessionService := service.NewSessionService(cfg, redisRepo)
	tokenService := service.NewTokenService(cfg, otpRepo, resetRepo)
	mailService := service.NewMailService(cfg, publisher)
	userService := service.NewUserService(cfg, userRepo, profileRepo, redisRepo, tokenService, mailService, publisher)
	passwordService := service.NewPasswordService(cfg, userRepo, tokenService, mailService)
	profileService := service.NewProfileService(userRepo, profileRepo)
	academicsService := service.NewAcademicsService(courseRepo, classRepo, curriculumRepo)
	quizService := service.NewQuizService(quizRepo, questionRepo, attemptRepo, publisher)
	parentService := service.NewParentService(userRepo, parentRepo, quizService)
	policyService := service.NewPolicyService(policyRepo)

	// HTTP surface.
	app := fiber.New(fiber.Config{
		AppName: "LearnHub",
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FEAddress, "http://localhost:3000"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	middleware := handlers.NewAuthMiddleware(cfg, jwtService, sessionService, userService, redisRepo)
	handlers.NewAuthHandler(cfg, userService, jwtService, sessionService, passwordService, middleware).RegisterRoutes(app)
	handlers.NewProfileHandler(cfg, profileService, userService, middleware).RegisterRoutes(app)
	handlers.NewParentHandler(parentService, userService, middleware).RegisterRoutes(app)
	handlers.NewAcademicsHandler(academicsService, middleware).RegisterRoutes(app)
	handlers.NewQuizHandler(quizService, middleware).RegisterRoutes(app)
	handlers.NewPolicyHandler(policyService, middleware).RegisterRoutes(app)

	registry, err := discovery.NewServiceRegistry(cfg)
	if err != nil {
		log.Printf("Service discovery unavailable: %s", err)
	} else if err := registry.Register(); err != nil {
		log.Printf("Service registration failed: %s", err)
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Error deregistering service: %v", err)
		}
	}
	if err := app.Shutdown(); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	<-doneChan
	log.Println("Server exited, goodbye!")
}
