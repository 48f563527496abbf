package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	adminapi "github.com/callboard-app/callboard/internal/http/api/admin/endpoints"
	volunteerapi "github.com/callboard-app/callboard/internal/http/api/volunteer/endpoints"
	"github.com/callboard-app/callboard/internal/http/middleware"
	"github.com/callboard-app/callboard/internal/jobs"
	"github.com/callboard-app/callboard/internal/redis"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, tokens redis.TokenStore, queue jobs.Enqueuer) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      middleware.AudienceAdmin,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.AuthSessionModule(env.SecretKey, store),
		adminapi.ShowModule(store),
		adminapi.ShiftModule(store),
		adminapi.ParticipantModule(store),
		adminapi.ReportModule(store, queue, env.SiteURL),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/volunteer",
	},
		volunteerapi.AuthPublicModule(env.SecretKey, env.SiteURL, store, tokens, queue),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/volunteer",
		Auth:      middleware.AudienceVolunteer,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		volunteerapi.ShiftModule(store, env.SiteURL),
	)
}
