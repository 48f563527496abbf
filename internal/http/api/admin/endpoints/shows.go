package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/callboard-app/callboard/internal/adelaide"
	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/api/admin/packets"
	"github.com/callboard-app/callboard/internal/model"
)

type ShowController struct {
	store db.Store
}

func ShowModule(store db.Store) api.Module {
	ctl := &ShowController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/shows", ctl.listShows)
		c.POST("/shows", ctl.createShow)
		c.PUT("/shows/:id", ctl.updateShow)
		c.DELETE("/shows/:id", ctl.deleteShow)

		// performances
		c.GET("/shows/:id/dates", ctl.listShowDates)
		c.POST("/shows/:id/dates", ctl.createShowDate)
		c.DELETE("/show_dates/:id", ctl.deleteShowDate)

		// intermissions
		c.GET("/shows/:id/intervals", ctl.listShowIntervals)
		c.POST("/shows/:id/intervals", ctl.createShowInterval)
		c.DELETE("/show_intervals/:id", ctl.deleteShowInterval)
	})
}

func showResponse(sh model.Show) packets.ShowResponse {
	return packets.ShowResponse{
		ID:        sh.ID,
		Name:      sh.Name,
		CreatedAt: sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sh.UpdatedAt.Format(time.RFC3339),
	}
}

func showDateResponse(d model.ShowDate) packets.ShowDateResponse {
	return packets.ShowDateResponse{
		ID:         d.ID,
		ShowID:     d.ShowID,
		Date:       adelaide.WallDate(d.StartTime),
		StartTime:  adelaide.WallTime(d.StartTime),
		EndTime:    adelaide.WallTime(d.EndTime),
		NextDayEnd: !adelaide.SameLocalDay(d.StartTime, d.EndTime),
	}
}

func (s *ShowController) listShows(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	list, err := s.store.ListShows()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list shows"}
	}
	response := make([]packets.ShowResponse, 0, len(list))
	for _, sh := range list {
		response = append(response, showResponse(sh))
	}
	return response, nil
}

func (s *ShowController) createShow(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.CreateShowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	sh, err := s.store.CreateShow(request.Name)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create show"}
	}
	return showResponse(sh), nil
}

func (s *ShowController) updateShow(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var request packets.UpdateShowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if _, err := s.store.GetShow(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "show not found"}
	}
	if err := s.store.UpdateShow(id, request.Name); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update show"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *ShowController) deleteShow(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := s.store.DeleteShow(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete show"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (s *ShowController) listShowDates(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	showID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid show id"}
	}
	list, err := s.store.ListShowDates(showID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list show dates"}
	}
	response := make([]packets.ShowDateResponse, 0, len(list))
	for _, d := range list {
		response = append(response, showDateResponse(d))
	}
	return response, nil
}

func (s *ShowController) createShowDate(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	showID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid show id"}
	}
	var request packets.CreateShowDateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if _, err := s.store.GetShow(showID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "show not found"}
	}

	start, err := adelaide.Combine(request.Date, request.StartTime)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid date or start time"}
	}
	end, err := adelaide.Combine(request.Date, request.EndTime)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end time"}
	}
	// a performance ending at or before its start runs past midnight
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	d, err := s.store.CreateShowDate(showID, start, end)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create show date"}
	}
	return showDateResponse(d), nil
}

func (s *ShowController) deleteShowDate(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := s.store.DeleteShowDate(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete show date"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (s *ShowController) listShowIntervals(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	showID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid show id"}
	}
	list, err := s.store.ListShowIntervals(showID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list intervals"}
	}
	response := make([]packets.ShowIntervalResponse, 0, len(list))
	for _, iv := range list {
		response = append(response, packets.ShowIntervalResponse{
			ID:              iv.ID,
			ShowID:          iv.ShowID,
			StartMinutes:    iv.StartMinutes,
			DurationMinutes: iv.DurationMinutes,
		})
	}
	return response, nil
}

func (s *ShowController) createShowInterval(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	showID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid show id"}
	}
	var request packets.CreateShowIntervalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if _, err := s.store.GetShow(showID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "show not found"}
	}

	// intervals of one show must not overlap
	existing, err := s.store.ListShowIntervals(showID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list intervals"}
	}
	newStart := request.StartMinutes
	newEnd := request.StartMinutes + request.DurationMinutes
	for _, iv := range existing {
		if newStart < iv.StartMinutes+iv.DurationMinutes && newEnd > iv.StartMinutes {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "interval overlaps an existing interval"}
		}
	}

	iv, err := s.store.CreateShowInterval(showID, request.StartMinutes, request.DurationMinutes)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create interval"}
	}
	return packets.ShowIntervalResponse{
		ID:              iv.ID,
		ShowID:          iv.ShowID,
		StartMinutes:    iv.StartMinutes,
		DurationMinutes: iv.DurationMinutes,
	}, nil
}

func (s *ShowController) deleteShowInterval(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := s.store.DeleteShowInterval(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete interval"}
	}
	return gin.H{"message": "deleted"}, nil
}
