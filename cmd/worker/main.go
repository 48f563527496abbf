package main

import (
	"os"
	"strconv"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/jobs"
	"github.com/callboard-app/callboard/internal/mailer"
)

// The worker owns everything slow about email: rendering PDF
// attachments and talking to SMTP. It shares the database and the task
// queue with the API server and nothing else.

type Environment struct {
	DatabaseURL string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	SiteURL string

	Concurrency int
}

func LoadEnvironment() Environment {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	concurrency, _ := strconv.Atoi(os.Getenv("WORKER_CONCURRENCY"))
	if concurrency == 0 {
		concurrency = 5
	}

	env := Environment{
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     port,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		SiteURL: os.Getenv("SITE_URL"),

		Concurrency: concurrency,
	}

	if env.SiteURL == "" {
		env.SiteURL = "http://localhost:8080"
	}
	if env.DatabaseURL == "" || env.RedisAddress == "" || env.SMTPHost == "" || env.SMTPFrom == "" {
		log.Fatal().Msg("Missing required environment variables")
	}
	return env
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	env := LoadEnvironment()

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	store := db.NewStore(db.DB)

	mail := mailer.NewSMTPMailer(env.SMTPHost, env.SMTPPort, env.SMTPUsername, env.SMTPPassword, env.SMTPFrom)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     env.RedisAddress,
			Username: env.RedisUsername,
			Password: env.RedisPassword,
		},
		asynq.Config{Concurrency: env.Concurrency},
	)

	mux := asynq.NewServeMux()
	jobs.NewWorker(store, mail, env.SiteURL).Register(mux)

	log.Info().Int("concurrency", env.Concurrency).Msg("email worker starting")
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("worker error")
	}
}
