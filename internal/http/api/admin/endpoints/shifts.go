package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/adelaide"
	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/api/admin/packets"
	"github.com/callboard-app/callboard/internal/model"
)

type ShiftController struct {
	store db.Store
}

func ShiftModule(store db.Store) api.Module {
	ctl := &ShiftController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/show_dates/:id/shifts", ctl.listShifts)
		c.POST("/show_dates/:id/shifts", ctl.createShift)
		c.PUT("/shifts/:id", ctl.updateShift)
		c.DELETE("/shifts/:id", ctl.deleteShift)
		c.POST("/shifts/:id/bulk_times", ctl.bulkUpdateTimes)

		c.POST("/shifts/:id/assign", ctl.assignShift)
		c.DELETE("/shifts/:id/assign/:participant_id", ctl.unassignShift)
	})
}

func shiftResponse(sh model.Shift) packets.ShiftResponse {
	return packets.ShiftResponse{
		ID:         sh.ID,
		ShowDateID: sh.ShowDateID,
		Role:       sh.Role,
		Arrive:     adelaide.WallTime(sh.ArriveTime),
		Depart:     adelaide.WallTime(sh.DepartTime),
		NextDay:    !adelaide.SameLocalDay(sh.ArriveTime, sh.DepartTime),
	}
}

// combineShiftTimes anchors two wall-clock times to a performance date.
// A depart at or before the arrive lands on the following day.
func combineShiftTimes(date, arrive, depart string) (time.Time, time.Time, *api.APIError) {
	a, err := adelaide.Combine(date, arrive)
	if err != nil {
		return time.Time{}, time.Time{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid arrive time"}
	}
	d, err := adelaide.Combine(date, depart)
	if err != nil {
		return time.Time{}, time.Time{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid depart time"}
	}
	if !d.After(a) {
		d = d.AddDate(0, 0, 1)
	}
	return a, d, nil
}

func (s *ShiftController) listShifts(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	showDateID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid show date id"}
	}
	list, err := s.store.ListShiftsForShowDate(showDateID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list shifts"}
	}
	response := make([]packets.ShiftResponse, 0, len(list))
	for _, sh := range list {
		response = append(response, shiftResponse(sh))
	}
	return response, nil
}

func (s *ShiftController) createShift(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	showDateID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid show date id"}
	}
	var request packets.CreateShiftRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	date, err := s.store.GetShowDate(showDateID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "show date not found"}
	}

	arrive, depart, apiErr := combineShiftTimes(adelaide.WallDate(date.StartTime), request.Arrive, request.Depart)
	if apiErr != nil {
		return nil, apiErr
	}
	sh, err := s.store.CreateShift(showDateID, request.Role, arrive, depart)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create shift"}
	}
	return shiftResponse(sh), nil
}

func (s *ShiftController) updateShift(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var request packets.UpdateShiftRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	sh, err := s.store.GetShift(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "shift not found"}
	}

	role := sh.Role
	if request.Role != nil {
		role = *request.Role
	}
	arriveWall := adelaide.WallTime(sh.ArriveTime)
	if request.Arrive != nil {
		arriveWall = *request.Arrive
	}
	departWall := adelaide.WallTime(sh.DepartTime)
	if request.Depart != nil {
		departWall = *request.Depart
	}
	arrive, depart, apiErr := combineShiftTimes(adelaide.WallDate(sh.ArriveTime), arriveWall, departWall)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.UpdateShift(id, role, arrive, depart); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update shift"}
	}
	updated, err := s.store.GetShift(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reload shift"}
	}
	return shiftResponse(updated), nil
}

func (s *ShiftController) deleteShift(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := s.store.DeleteShift(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete shift"}
	}
	return gin.H{"message": "deleted"}, nil
}

// bulkUpdateTimes retimes the reference shift and every other shift of
// the same show that currently shares its arrive/depart wall times.
// Matching on wall times rather than instants keeps a time group intact
// across a daylight-saving change mid-season.
func (s *ShiftController) bulkUpdateTimes(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var request packets.BulkShiftTimesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	ref, err := s.store.GetShift(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "shift not found"}
	}
	refDate, err := s.store.GetShowDate(ref.ShowDateID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load show date"}
	}

	siblings, err := s.store.ListShiftsForShow(refDate.ShowID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list shifts"}
	}

	wantArrive := adelaide.WallTime(ref.ArriveTime)
	wantDepart := adelaide.WallTime(ref.DepartTime)
	updated := 0
	for _, sh := range siblings {
		if adelaide.WallTime(sh.ArriveTime) != wantArrive || adelaide.WallTime(sh.DepartTime) != wantDepart {
			continue
		}
		arrive, depart, apiErr := combineShiftTimes(adelaide.WallDate(sh.ArriveTime), request.Arrive, request.Depart)
		if apiErr != nil {
			return nil, apiErr
		}
		if err := s.store.UpdateShiftTimes(sh.ID, arrive, depart); err != nil {
			log.Error().Err(err).Int("shift_id", sh.ID).Msg("BulkShiftUpdateFailed")
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update shift times"}
		}
		updated++
	}
	return gin.H{"updated": updated}, nil
}

func (s *ShiftController) assignShift(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var request packets.AssignShiftRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if _, err := s.store.GetShift(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "shift not found"}
	}
	if _, err := s.store.GetParticipantByID(request.ParticipantID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "participant not found"}
	}
	if err := s.store.AssignParticipantToShift(id, request.ParticipantID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not assign shift"}
	}
	return gin.H{"message": "assigned"}, nil
}

func (s *ShiftController) unassignShift(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	participantID, err := strconv.Atoi(ctx.Param("participant_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid participant id"}
	}
	if err := s.store.UnassignParticipantFromShift(id, participantID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not unassign shift"}
	}
	return gin.H{"message": "unassigned"}, nil
}
