package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasknest/config"
	sweepCron "tasknest/cron"
	"tasknest/database"
	subscriptionRepo "tasknest/database/repository/subscription"
	taskRepo "tasknest/database/repository/task"
	userRepoPkg "tasknest/database/repository/user"
	"tasknest/handlers"
	"tasknest/middleware"
	"tasknest/routes"
	"tasknest/services/notification"
	"tasknest/services/subscription"
	"tasknest/services/task"
	"tasknest/services/user"
	"tasknest/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	tasks := taskRepo.NewMongoTaskRepo()
	subs := subscriptionRepo.NewMongoSubscriptionRepo()
	users := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{Repo: users}
	taskService := &task.DefaultTaskService{Repo: tasks}
	subscriptionService := &subscription.DefaultSubscriptionService{Repo: subs}

	pushSender := &notification.VAPIDPushSender{
		Subject:    config.AppConfig.VAPIDSubject,
		PublicKey:  config.AppConfig.VAPIDPublicKey,
		PrivateKey: config.AppConfig.VAPIDPrivateKey,
		TTL:        60,
	}
	sweepService := &notification.DefaultSweepService{
		Tasks:  tasks,
		Subs:   subs,
		Push:   pushSender,
		AppURL: config.AppConfig.AppURL,
	}

	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, sweepService)
	sweepHandler := handlers.NewSweepHandler(sweepService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: users,

		RegisterUserHandler:     userHandler.RegisterUserHandler,
		AuthenticateUserHandler: userHandler.AuthenticateUserHandler,
		GetCurrentUserHandler:   userHandler.GetCurrentUserHandler,
		RevokeUserAuthHandler:   userHandler.RevokeUserAuthHandler,

		ListTasksHandler:        taskHandler.ListTasksHandler,
		SaveTaskHandler:         taskHandler.SaveTaskHandler,
		DeleteTaskHandler:       taskHandler.DeleteTaskHandler,
		ToggleCompletionHandler: taskHandler.ToggleCompletionHandler,

		SaveSubscriptionHandler:   subscriptionHandler.SaveSubscriptionHandler,
		RevokeSubscriptionHandler: subscriptionHandler.RevokeSubscriptionHandler,
		TestPushHandler:           subscriptionHandler.TestPushHandler,

		CheckNotificationsHandler: sweepHandler.CheckNotificationsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Optional self-hosted sweep scheduler.
	cronCtx, cancelCron := context.WithCancel(context.Background())
	defer cancelCron()
	if config.AppConfig.CronSelfHosted {
		sweepCron.StartSweepScheduler(cronCtx, sweepService)
		logger.Sugar().Info("main: self-hosted sweep scheduler enabled")
	}

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	cancelCron()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
