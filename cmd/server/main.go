package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/jobs"
	"github.com/callboard-app/callboard/internal/redis"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	env := LoadEnvironment()

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(db.DB)

	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	tokens := redis.NewTokenStore()

	queue := jobs.NewClient(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	defer queue.Close()

	r := gin.Default()
	RegisterRoutes(r, env, store, tokens, queue)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
