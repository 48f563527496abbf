package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/api/admin/packets"
	"github.com/callboard-app/callboard/internal/model"
)

type ParticipantController struct {
	store db.Store
}

func ParticipantModule(store db.Store) api.Module {
	ctl := &ParticipantController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/participants", ctl.listParticipants)
		c.POST("/participants", ctl.createParticipant)
		c.POST("/participants/:id/approve", ctl.approveParticipant)
		c.DELETE("/participants/:id/approve", ctl.revokeApproval)
		c.DELETE("/participants/:id", ctl.deleteParticipant)
	})
}

func participantResponse(p model.Participant) packets.ParticipantResponse {
	return packets.ParticipantResponse{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Approved: p.Approved,
	}
}

func (p *ParticipantController) listParticipants(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	list, err := p.store.ListParticipants()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list participants"}
	}
	response := make([]packets.ParticipantResponse, 0, len(list))
	for _, pr := range list {
		response = append(response, participantResponse(pr))
	}
	return response, nil
}

func (p *ParticipantController) createParticipant(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.CreateParticipantRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if existing, _ := p.store.GetParticipantByEmail(request.Email); existing != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "participant email already registered"}
	}
	pr, err := p.store.CreateParticipant(request.Name, request.Email, request.Phone)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create participant"}
	}
	return participantResponse(pr), nil
}

func (p *ParticipantController) approveParticipant(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	return p.setApproval(ctx, true)
}

func (p *ParticipantController) revokeApproval(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	return p.setApproval(ctx, false)
}

func (p *ParticipantController) setApproval(ctx *gin.Context, approved bool) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if _, err := p.store.GetParticipantByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "participant not found"}
	}
	if err := p.store.SetParticipantApproved(id, approved); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update approval"}
	}
	return gin.H{"approved": approved}, nil
}

func (p *ParticipantController) deleteParticipant(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := p.store.DeleteParticipant(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete participant"}
	}
	return gin.H{"message": "deleted"}, nil
}
