package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/adelaide"
	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/api/volunteer/packets"
	"github.com/callboard-app/callboard/internal/model"
	"github.com/callboard-app/callboard/internal/reports"
)

type ShiftController struct {
	store   db.Store
	siteURL string
}

func ShiftModule(store db.Store, siteURL string) api.Module {
	ctl := &ShiftController{store: store, siteURL: siteURL}
	return api.ModuleFunc(func(c *api.Controller) {
		c.VOLUNTEER_GET("/me/shifts", ctl.myShifts)
		c.VOLUNTEER_GET("/me/schedule.pdf", ctl.mySchedule)
		c.VOLUNTEER_GET("/open_shifts", ctl.openShifts)
		c.VOLUNTEER_POST("/shifts/:id/signup", ctl.signup)
		c.VOLUNTEER_DELETE("/shifts/:id/signup", ctl.withdraw)
	})
}

func (s *ShiftController) myShifts(ctx *gin.Context, participant *model.Participant) (any, *api.APIError) {
	rows, err := s.store.ShiftsForParticipant(participant.ID, adelaide.StartOfCurrentMonth())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list shifts"}
	}
	response := make([]packets.MyShiftResponse, 0, len(rows))
	for _, r := range rows {
		response = append(response, packets.MyShiftResponse{
			ShiftID:  r.ShiftID,
			ShowName: r.ShowName,
			Date:     adelaide.WallDate(r.Date),
			Role:     r.Role,
			Arrive:   adelaide.WallTime(r.ArriveTime),
			Depart:   adelaide.WallTime(r.DepartTime),
			NextDay:  !adelaide.SameLocalDay(r.ArriveTime, r.DepartTime),
		})
	}
	return response, nil
}

func (s *ShiftController) mySchedule(ctx *gin.Context, participant *model.Participant) (any, *api.APIError) {
	bytes, err := reports.VolunteerSchedule(s.store, participant.ID, s.siteURL)
	if err != nil {
		log.Error().Err(err).Int("participant_id", participant.ID).Msg("ScheduleReportFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return api.PDF{Filename: "schedule.pdf", Bytes: bytes}, nil
}

func (s *ShiftController) openShifts(ctx *gin.Context, participant *model.Participant) (any, *api.APIError) {
	rows, err := reports.OpenShifts(s.store, participant.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list open shifts"}
	}
	response := make([]packets.OpenShiftResponse, 0, len(rows))
	for _, r := range rows {
		response = append(response, packets.OpenShiftResponse{
			ShiftID:  r.ShiftID,
			ShowName: r.ShowName,
			Date:     adelaide.WallDate(r.Date),
			Role:     r.Role,
			Arrive:   adelaide.WallTime(r.ArriveTime),
			Depart:   adelaide.WallTime(r.DepartTime),
		})
	}
	return response, nil
}

// signup only accepts shifts that are currently open for this
// volunteer, which covers filled shifts, past shifts and anything that
// would double-book them in one check.
func (s *ShiftController) signup(ctx *gin.Context, participant *model.Participant) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid shift id"}
	}
	if _, err := s.store.GetShift(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "shift not found"}
	}

	open, err := reports.OpenShifts(s.store, participant.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check availability"}
	}
	available := false
	for _, r := range open {
		if r.ShiftID == id {
			available = true
			break
		}
	}
	if !available {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "shift is taken or clashes with one of your shifts"}
	}

	if err := s.store.AssignParticipantToShift(id, participant.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not sign up"}
	}
	return gin.H{"message": "signed up"}, nil
}

func (s *ShiftController) withdraw(ctx *gin.Context, participant *model.Participant) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid shift id"}
	}
	if err := s.store.UnassignParticipantFromShift(id, participant.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not withdraw"}
	}
	return gin.H{"message": "withdrawn"}, nil
}
