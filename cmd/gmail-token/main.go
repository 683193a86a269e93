// Command gmail-token mints the OAuth token the contact form uses to send mail.
package main

import (
	"context"
	"os"

	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/config"
	"github.com/justsurfingit/hirely/internal/logging"
)

func main() {
	cfg, err := config.Load()
	log := logging.New(cfg.LogLevel)
	defer log.Sync()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	if err := auth.AuthorizeGmail(context.Background(), cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile, os.Stdin, os.Stdout); err != nil {
		log.Fatal("gmail authorization failed", "err", err)
	}
	log.Info("gmail token saved", "path", cfg.Gmail.TokenFile)
}
