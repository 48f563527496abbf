package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/middleware"
)

// Module is a pluggable feature that attaches its endpoints to a
// Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// Controller wraps a gin group with the handler-resolution helpers the
// endpoint modules use.
type Controller struct {
	Group *gin.RouterGroup
}

// admin-authenticated routes

func (c *Controller) GET(path string, h AdminHandlerFunc) {
	c.Group.GET(path, ResolveAdminEndpoint(h))
}
func (c *Controller) POST(path string, h AdminHandlerFunc) {
	c.Group.POST(path, ResolveAdminEndpoint(h))
}
func (c *Controller) PUT(path string, h AdminHandlerFunc) {
	c.Group.PUT(path, ResolveAdminEndpoint(h))
}
func (c *Controller) DELETE(path string, h AdminHandlerFunc) {
	c.Group.DELETE(path, ResolveAdminEndpoint(h))
}

// volunteer-authenticated routes

func (c *Controller) VOLUNTEER_GET(path string, h VolunteerHandlerFunc) {
	c.Group.GET(path, ResolveVolunteerEndpoint(h))
}
func (c *Controller) VOLUNTEER_POST(path string, h VolunteerHandlerFunc) {
	c.Group.POST(path, ResolveVolunteerEndpoint(h))
}
func (c *Controller) VOLUNTEER_DELETE(path string, h VolunteerHandlerFunc) {
	c.Group.DELETE(path, ResolveVolunteerEndpoint(h))
}

// unauthenticated routes

func (c *Controller) PUBLIC_GET(path string, h HandlerFunc) {
	c.Group.GET(path, ResolveEndpoint(h))
}
func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h))
}

// GroupConfig tells the api package how to mount a group. Auth selects
// which identity the bearer token must carry.
type GroupConfig struct {
	Prefix     string
	Auth       string // "", middleware.AudienceAdmin or middleware.AudienceVolunteer
	SecretKey  string // required if Auth is set
	Store      db.Store
	Middleware []gin.HandlerFunc // optional additional middleware
}

// MountGroup mounts one or more Modules under a prefix with optional
// auth.
func MountGroup(parent gin.IRoutes, cfg GroupConfig, modules ...Module) {
	var grp *gin.RouterGroup

	switch v := parent.(type) {
	case *gin.Engine:
		grp = v.Group(cfg.Prefix)
	case *gin.RouterGroup:
		if cfg.Prefix != "" {
			grp = v.Group(cfg.Prefix)
		} else {
			grp = v
		}
	default:
		log.Fatal().Str("type", fmt.Sprintf("%T", parent)).Msg("api.MountGroup: unsupported router type")
	}

	// Apply middleware in a deterministic order.
	for _, mw := range cfg.Middleware {
		grp.Use(mw)
	}
	switch cfg.Auth {
	case "":
	case middleware.AudienceAdmin:
		if cfg.SecretKey == "" {
			log.Fatal().Msg("api.MountGroup: Auth enabled but SecretKey is empty")
		}
		grp.Use(middleware.AdminJWTMiddleware(cfg.SecretKey, cfg.Store))
	case middleware.AudienceVolunteer:
		if cfg.SecretKey == "" {
			log.Fatal().Msg("api.MountGroup: Auth enabled but SecretKey is empty")
		}
		grp.Use(middleware.VolunteerJWTMiddleware(cfg.SecretKey, cfg.Store))
	default:
		log.Fatal().Str("auth", cfg.Auth).Msg("api.MountGroup: unknown auth audience")
	}

	controller := &Controller{Group: grp}

	for _, m := range modules {
		m.Mount(controller)
	}
}
