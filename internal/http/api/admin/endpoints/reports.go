package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/api/admin/packets"
	"github.com/callboard-app/callboard/internal/jobs"
	"github.com/callboard-app/callboard/internal/model"
	"github.com/callboard-app/callboard/internal/reports"
)

type ReportController struct {
	store   db.Store
	queue   jobs.Enqueuer
	siteURL string
}

func ReportModule(store db.Store, queue jobs.Enqueuer, siteURL string) api.Module {
	ctl := &ReportController{store: store, queue: queue, siteURL: siteURL}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/show_dates/:id/run_sheet.pdf", ctl.runSheet)
		c.GET("/reports/unfilled.pdf", ctl.unfilled)
		c.GET("/reports/outstanding.pdf", ctl.outstanding)
		c.GET("/participants/:id/schedule.pdf", ctl.participantSchedule)
		c.POST("/participants/:id/email_schedule", ctl.emailSchedule)
		c.POST("/reports/email_outstanding", ctl.emailOutstanding)
	})
}

func (r *ReportController) runSheet(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid show date id"}
	}
	if _, err := r.store.GetShowDate(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "show date not found"}
	}
	bytes, err := reports.RunSheet(r.store, id)
	if err != nil {
		log.Error().Err(err).Int("show_date_id", id).Msg("RunSheetFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return api.PDF{Filename: fmt.Sprintf("run-sheet-%d.pdf", id), Bytes: bytes}, nil
}

func (r *ReportController) unfilled(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	bytes, err := reports.Unfilled(r.store)
	if err != nil {
		log.Error().Err(err).Msg("UnfilledReportFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return api.PDF{Filename: "unfilled-shifts.pdf", Bytes: bytes}, nil
}

func (r *ReportController) outstanding(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid limit"}
		}
		limit = n
	}
	bytes, err := reports.Outstanding(r.store, limit)
	if err != nil {
		log.Error().Err(err).Msg("OutstandingReportFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return api.PDF{Filename: "outstanding-shifts.pdf", Bytes: bytes}, nil
}

func (r *ReportController) participantSchedule(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid participant id"}
	}
	if _, err := r.store.GetParticipantByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "participant not found"}
	}
	bytes, err := reports.VolunteerSchedule(r.store, id, r.siteURL)
	if err != nil {
		log.Error().Err(err).Int("participant_id", id).Msg("ScheduleReportFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return api.PDF{Filename: "schedule.pdf", Bytes: bytes}, nil
}

func (r *ReportController) emailSchedule(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid participant id"}
	}
	if _, err := r.store.GetParticipantByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "participant not found"}
	}
	if err := r.queue.EnqueueScheduleEmail(jobs.ScheduleEmailPayload{ParticipantID: id}); err != nil {
		log.Error().Err(err).Int("participant_id", id).Msg("EnqueueScheduleEmailFailed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not queue email"}
	}
	return gin.H{"message": "queued"}, nil
}

// emailOutstanding queues one outstanding-shifts digest per approved
// volunteer. A single bad enqueue aborts the loop so the failure is
// visible rather than half the list silently going unsent.
func (r *ReportController) emailOutstanding(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.EmailOutstandingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	approved, err := r.store.ListApprovedParticipants()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list participants"}
	}
	queued := 0
	for _, p := range approved {
		payload := jobs.OutstandingEmailPayload{ParticipantID: p.ID, Limit: request.Limit}
		if err := r.queue.EnqueueOutstandingEmail(payload); err != nil {
			log.Error().Err(err).Int("participant_id", p.ID).Msg("EnqueueOutstandingEmailFailed")
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not queue emails"}
		}
		queued++
	}
	return gin.H{"queued": queued}, nil
}
