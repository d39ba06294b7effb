package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rituday/config"
	"github.com/oksasatya/rituday/internal/application"
	"github.com/oksasatya/rituday/internal/container"
	"github.com/oksasatya/rituday/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg.MailSendEnabled = false
	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer c.Close()

	id, password, name, email := "demo", "password123", "Demo User", "demo@rituday.local"

	accounts := c.AccountService()
	err = accounts.CreateAccount(ctx, id, password, name, email)
	switch {
	case errors.Is(err, application.ErrAccountExists):
		helpers.LogInfo(logger, "demo account already exists", logrus.Fields{"account_id": id})
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		helpers.LogInfo(logger, "seeded demo account", logrus.Fields{"account_id": id, "email": email, "password": password})
	}

	r, err := c.RitualService().Enroll(ctx, "gratitude", "Started using rituday.", email)
	if err != nil {
		log.Fatalf("failed to seed ritual: %v", err)
	}
	helpers.LogInfo(logger, "seeded ritual for today", logrus.Fields{"ritual_id": r.ID, "year": r.Year, "month": r.Month, "day": r.Day})
}
