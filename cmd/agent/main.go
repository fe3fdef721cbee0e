package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/SireeshaRagipati24/instagen-scheduler/configs"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/api/handlers"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/api/middleware"
	job "github.com/SireeshaRagipati24/instagen-scheduler/internal/jobs"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/notify"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/otp"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/registry"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/remote"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/repository"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/scheduler"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open local database: %v", err)
	}
	defer closeDB(db)

	stateRepo := repository.NewAgentStateRepository(db)
	if err := stateRepo.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to migrate local database: %v", err)
	}

	store := remote.NewStoreClient(cfg.BackendURL)

	sessionService := service.NewSessionService(*cfg, store, stateRepo)
	if err := sessionService.Restore(context.Background()); err != nil {
		log.Println("No backend session restored; login required", err)
	}

	toastBuffer := notify.NewBuffer()
	notifier := notify.Tee(notify.NewLogNotifier(), toastBuffer)

	reg := registry.New(store, notifier)

	draftService := service.NewDraftService(stateRepo)
	if err := draftService.Hydrate(context.Background()); err != nil {
		log.Println("Warning: unable to restore saved draft", err)
	}

	imageService, err := service.NewImageService(store, cfg.CacheDir)
	if err != nil {
		log.Fatalf("Failed to set up image cache: %v", err)
	}

	otpHandler := otp.NewHandler(store, func(ctx context.Context) {
		reg.Refresh(ctx)
	})

	controller := scheduler.NewController(store, reg, draftService, notifier)

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, sessionService)
	app.Post("/login", auth.Login)
	app.Post("/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	post := handlers.NewPostHandler(reg, controller)
	api.Get("/scheduled-posts", post.ListPosts)
	api.Post("/schedule-post", post.SchedulePost)
	api.Delete("/scheduled-post/:id", post.RemovePost)

	draft := handlers.NewDraftHandler(draftService)
	api.Get("/draft", draft.GetDraft)
	api.Post("/draft", draft.UpdateDraft)

	otpAPI := handlers.NewOtpHandler(otpHandler, reg)
	api.Get("/otp", otpAPI.Challenge)
	api.Post("/otp/open", otpAPI.Open)
	api.Post("/otp/submit", otpAPI.Submit)
	api.Post("/otp/cancel", otpAPI.Cancel)

	image := handlers.NewImageHandler(imageService)
	api.Get("/get-image", image.GetImage)

	notifications := handlers.NewNotificationHandler(toastBuffer)
	api.Get("/notifications", notifications.ListNotifications)

	// background poll keeps post statuses fresh
	pollJob := job.NewRegistryPollJob(reg)
	poller, err := job.StartPoller(cfg.PollSpec, pollJob.Run)
	if err != nil {
		log.Fatalf("Failed to start poll job: %v", err)
	}

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Scheduler agent is running on %s", cfg.ListenAddr)

	gracefulShutdown(app, db, poller, reg)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing local database... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, poller *job.Poller, reg *registry.Registry) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down agent...")

	poller.Stop()
	reg.Close()

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Agent shutdown complete.")
}
