// Package config reads runtime settings from the environment (and an optional .env file).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"

	ChatbotRules = "rules"
	ChatbotLLM   = "llm"
)

// Config contains every setting the API server needs.
type Config struct {
	Port     string
	LogLevel string

	Reed struct {
		APIKey  string
		BaseURL string
	}

	Firebase struct {
		APIKey      string // web API key, end-user auth flows
		ProjectID   string
		ClientEmail string
		PrivateKey  string
	}
	AdminEmails []string

	SavedJobsBackend string
	DatabaseURL      string

	ChatbotMode string
	Gemini      struct {
		APIKey string
		Model  string
	}

	Gmail struct {
		CredentialsFile string
		TokenFile       string
		ContactInbox    string
	}
}

// AdminConfigured reports whether all service-account credentials are present.
func (c Config) AdminConfigured() bool {
	return c.Firebase.ProjectID != "" && c.Firebase.ClientEmail != "" && c.Firebase.PrivateKey != ""
}

// ServiceAccountJSON renders the service-account fields as a Google credentials file.
func (c Config) ServiceAccountJSON() ([]byte, error) {
	if !c.AdminConfigured() {
		return nil, fmt.Errorf("service account credentials are incomplete")
	}
	return json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   c.Firebase.ProjectID,
		"client_email": c.Firebase.ClientEmail,
		"private_key":  c.Firebase.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	// A missing .env is normal in deployed environments.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:     "8080",
		LogLevel: "info",
	}

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.Reed.APIKey = getenv("REED_API_KEY")
	cfg.Reed.BaseURL = getenv("REED_BASE_URL")

	cfg.Firebase.APIKey = getenv("FIREBASE_API_KEY")
	cfg.Firebase.ProjectID = getenv("FIREBASE_PROJECT_ID")
	cfg.Firebase.ClientEmail = getenv("FIREBASE_CLIENT_EMAIL")
	cfg.Firebase.PrivateKey = strings.ReplaceAll(getenv("FIREBASE_PRIVATE_KEY"), `\n`, "\n")

	for _, e := range strings.Split(getenv("ADMIN_EMAILS"), ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, e)
		}
	}

	cfg.DatabaseURL = getenv("DATABASE_URL")
	cfg.SavedJobsBackend = strings.ToLower(getenv("SAVED_JOBS_BACKEND"))
	if cfg.SavedJobsBackend == "" {
		if cfg.Firebase.ProjectID != "" {
			cfg.SavedJobsBackend = BackendFirestore
		} else {
			cfg.SavedJobsBackend = BackendMemory
		}
	}

	cfg.ChatbotMode = strings.ToLower(getenv("CHATBOT_MODE"))
	if cfg.ChatbotMode == "" {
		cfg.ChatbotMode = ChatbotRules
	}
	cfg.Gemini.APIKey = getenv("GEMINI_API_KEY")
	cfg.Gemini.Model = getenv("GEMINI_MODEL")
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}

	cfg.Gmail.CredentialsFile = getenv("GMAIL_CREDENTIALS_FILE")
	if cfg.Gmail.CredentialsFile == "" {
		cfg.Gmail.CredentialsFile = "credential.json"
	}
	cfg.Gmail.TokenFile = getenv("GMAIL_TOKEN_FILE")
	if cfg.Gmail.TokenFile == "" {
		cfg.Gmail.TokenFile = "token.json"
	}
	cfg.Gmail.ContactInbox = getenv("CONTACT_INBOX")

	switch cfg.SavedJobsBackend {
	case BackendFirestore:
		if cfg.Firebase.ProjectID == "" {
			return cfg, fmt.Errorf("SAVED_JOBS_BACKEND=firestore requires FIREBASE_PROJECT_ID")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("SAVED_JOBS_BACKEND=postgres requires DATABASE_URL")
		}
	case BackendMemory:
	default:
		return cfg, fmt.Errorf("unknown SAVED_JOBS_BACKEND %q", cfg.SavedJobsBackend)
	}

	switch cfg.ChatbotMode {
	case ChatbotRules:
	case ChatbotLLM:
		if cfg.Gemini.APIKey == "" {
			return cfg, fmt.Errorf("CHATBOT_MODE=llm requires GEMINI_API_KEY")
		}
	default:
		return cfg, fmt.Errorf("unknown CHATBOT_MODE %q", cfg.ChatbotMode)
	}

	return cfg, nil
}
