package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/config"
	"github.com/justsurfingit/hirely/internal/database"
	"github.com/justsurfingit/hirely/internal/handlers"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/reed"
	"github.com/justsurfingit/hirely/internal/services"
	"github.com/justsurfingit/hirely/internal/shutdown"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

var version = "dev"

func main() {
	// 1. Load Environment Variables
	cfg, err := config.Load()
	log := logging.New(cfg.LogLevel)
	defer log.Sync()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	var closers []shutdown.Stoppable

	// 2. Job board API
	var jobSource services.JobSource
	if client, err := reed.NewClient(reed.Config{APIKey: cfg.Reed.APIKey, BaseURL: cfg.Reed.BaseURL}); err != nil {
		log.Warn("REED_API_KEY not set; job routes will answer 500", "err", err)
	} else {
		jobSource = client
	}
	jobService := services.NewJobService(jobSource, log)

	// 3. Identity provider
	var identity auth.IdentityProvider
	if cfg.Firebase.APIKey != "" {
		id, err := auth.NewIdentity(ctx, cfg.Firebase.APIKey)
		if err != nil {
			log.Fatal("identity client", "err", err)
		}
		identity = id
	} else {
		log.Warn("FIREBASE_API_KEY not set; sign-in and saved jobs are disabled")
	}

	var admin auth.UserAdmin
	var credentialsJSON []byte
	if cfg.AdminConfigured() {
		credentialsJSON, err = cfg.ServiceAccountJSON()
		if err != nil {
			log.Fatal("service account", "err", err)
		}
		a, err := auth.NewAdmin(ctx, cfg.Firebase.ProjectID, credentialsJSON)
		if err != nil {
			log.Fatal("firebase admin", "err", err)
		}
		admin = a
	} else {
		log.Warn("Firebase Admin SDK not configured; user management is disabled")
	}

	// 4. Saved-jobs storage
	var repo services.SavedJobRepository
	switch cfg.SavedJobsBackend {
	case config.BackendFirestore:
		client, err := database.NewFirestoreClient(ctx, cfg.Firebase.ProjectID, credentialsJSON)
		if err != nil {
			log.Fatal("firestore", "err", err)
		}
		closers = append(closers, shutdown.Func(func(context.Context) error { return client.Close() }))
		repo = database.NewFirestoreSavedJobs(client)
	case config.BackendPostgres:
		db, err := database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			log.Fatal("postgres", "err", err)
		}
		closers = append(closers, shutdown.Func(func(context.Context) error { return database.Close(db) }))
		repo = database.NewPostgresSavedJobs(db)
	default:
		log.Warn("saved jobs are kept in memory and lost on restart")
		repo = database.NewMemorySavedJobs()
	}
	log.Info("saved jobs backend ready", "backend", cfg.SavedJobsBackend)
	savedJobs := services.NewSavedJobsService(repo, log)

	// 5. Chat responders
	var jobChat services.JobChatResponder = services.NewRuleChatResponder()
	if cfg.ChatbotMode == config.ChatbotLLM {
		llm, err := services.NewLLMChatResponder(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
		if err != nil {
			log.Fatal("llm client", "err", err)
		}
		jobChat = llm
	}
	log.Info("job chatbot ready", "mode", cfg.ChatbotMode)

	// 6. Gmail for the contact form
	var gmailService *gmail.Service
	if cfg.Gmail.ContactInbox != "" {
		httpClient, err := auth.GmailClient(ctx, cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile)
		switch {
		case errors.Is(err, auth.ErrNoGmailToken):
			log.Warn("gmail token missing; run cmd/gmail-token. Contact messages will only be logged")
		case err != nil:
			log.Warn("gmail client unavailable; contact messages will only be logged", "err", err)
		default:
			gmailService, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient))
			if err != nil {
				log.Warn("failed to create gmail service", "err", err)
				gmailService = nil
			} else {
				log.Info("gmail service connected")
			}
		}
	}
	emailService := services.NewEmailService(gmailService, cfg.Gmail.ContactInbox, log)

	// 7. Router
	router := handlers.NewRouter(handlers.Deps{
		Log:         log,
		Version:     version,
		Jobs:        jobService,
		SavedJobs:   savedJobs,
		JobChat:     jobChat,
		SiteChat:    services.NewWebsiteChatResponder(),
		Email:       emailService,
		Identity:    identity,
		Admin:       admin,
		AdminEmails: cfg.AdminEmails,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("server starting", "port", cfg.Port, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", "err", err)
		}
	}()

	stoppables := append([]shutdown.Stoppable{srv}, closers...)
	shutdown.Graceful(ctx, []os.Signal{os.Interrupt, syscall.SIGTERM}, 10*time.Second, log, stoppables...)
}
