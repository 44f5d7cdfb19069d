// @title ClinLabOps API
// @version 1.0
// @description Laboratory operations API with a deadline-reminder scheduler.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/prathameshp107/ClinLabOps-sub003/channels"
	"github.com/prathameshp107/ClinLabOps-sub003/cmd/api/middleware"
	"github.com/prathameshp107/ClinLabOps-sub003/controllers"
	_ "github.com/prathameshp107/ClinLabOps-sub003/docs"
	"github.com/prathameshp107/ClinLabOps-sub003/models"
	projectsvc "github.com/prathameshp107/ClinLabOps-sub003/services/project"
	"github.com/prathameshp107/ClinLabOps-sub003/services/reminder"
	tasksvc "github.com/prathameshp107/ClinLabOps-sub003/services/task"
	usersvc "github.com/prathameshp107/ClinLabOps-sub003/services/user"
	"github.com/prathameshp107/ClinLabOps-sub003/storage"
)

func main() {
	_ = godotenv.Load(".env", "../../.env", "../.env")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := storage.NewConnection(storage.Config{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
	})
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Project{}, &models.Task{},
		&models.Notification{}, &models.EmailLog{},
	); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := reminder.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("load reminder config", zap.Error(err))
	}

	emailChannel := &channels.EmailChannel{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	}

	scheduler, err := reminder.New(db, emailChannel, cfg, logger)
	if err != nil {
		logger.Fatal("init reminder scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	userService := usersvc.New(db)
	ctrl := routeControllers{
		users:         controllers.NewUserController(userService),
		projects:      controllers.NewProjectController(projectsvc.New(db)),
		tasks:         controllers.NewTaskController(tasksvc.New(db)),
		notifications: controllers.NewNotificationController(scheduler.Store()),
		admin:         controllers.NewAdminController(scheduler),
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	SetupRoutes(router, ctrl, middleware.AuthMiddleware(userService), middleware.AdminOnly())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: ":8080", Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()
	<-ctx.Done()
	_ = srv.Shutdown(context.Background())
}
