package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/api/volunteer/packets"
	"github.com/callboard-app/callboard/internal/http/middleware"
	"github.com/callboard-app/callboard/internal/jobs"
	"github.com/callboard-app/callboard/internal/redis"
)

// magicLinkTTL bounds how long a sign-in link stays live. Tokens are
// single use regardless.
const magicLinkTTL = 30 * time.Minute

type AuthController struct {
	jwtSecret string
	siteURL   string
	store     db.Store
	tokens    redis.TokenStore
	queue     jobs.Enqueuer
}

func AuthPublicModule(jwtSecret, siteURL string, store db.Store, tokens redis.TokenStore, queue jobs.Enqueuer) api.Module {
	ctl := &AuthController{
		jwtSecret: jwtSecret,
		siteURL:   siteURL,
		store:     store,
		tokens:    tokens,
		queue:     queue,
	}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/request_link", ctl.requestLink)
		c.PUBLIC_POST("/auth/redeem", ctl.redeem)
	})
}

// requestLink answers the same way whether or not the address is known,
// so the endpoint cannot be used to probe the volunteer list. A link is
// only issued for an approved participant.
func (a *AuthController) requestLink(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RequestLinkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	response := gin.H{"message": "if that address is registered, a sign-in link is on its way"}

	participant, err := a.store.GetParticipantByEmail(request.Email)
	if err != nil || participant == nil || !participant.Approved {
		return response, nil
	}

	token := uuid.NewString()
	if err := a.tokens.StoreMagicToken(ctx, token, participant.ID, magicLinkTTL); err != nil {
		log.Error().Err(err).Msg("StoreMagicTokenFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not issue sign-in link"}
	}

	link := fmt.Sprintf("%s/volunteer/redeem?token=%s", a.siteURL, token)
	err = a.queue.EnqueueMagicLink(jobs.MagicLinkPayload{
		Email: participant.Email,
		Name:  participant.Name,
		Link:  link,
	})
	if err != nil {
		log.Error().Err(err).Msg("EnqueueMagicLinkFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not issue sign-in link"}
	}
	return response, nil
}

func (a *AuthController) redeem(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RedeemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	participantID, err := a.tokens.RedeemMagicToken(ctx, request.Token)
	if err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "link is invalid or has expired"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not redeem link"}
	}

	participant, err := a.store.GetParticipantByID(participantID)
	if err != nil || participant == nil {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "link is invalid or has expired"}
	}
	if !participant.Approved {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "account is awaiting approval"}
	}

	token, err := middleware.GenerateJWT(participant.ID, middleware.AudienceVolunteer, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create session"}
	}
	return packets.RedeemResponse{Token: token, Name: participant.Name}, nil
}
