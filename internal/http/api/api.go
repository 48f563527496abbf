package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/callboard-app/callboard/internal/http/middleware"
	"github.com/callboard-app/callboard/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

// PDF is returned from a handler when the response is a document rather
// than JSON; the resolver writes it as an attachment download.
type PDF struct {
	Filename string
	Bytes    []byte
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)
type AdminHandlerFunc func(ctx *gin.Context, admin *model.Admin) (any, *APIError)
type VolunteerHandlerFunc func(ctx *gin.Context, participant *model.Participant) (any, *APIError)

func writeResult(ctx *gin.Context, result any, apiErr *APIError) {
	if apiErr != nil {
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}
	if doc, ok := result.(PDF); ok {
		ctx.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
		ctx.Data(http.StatusOK, "application/pdf", doc.Bytes)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		writeResult(ctx, result, apiErr)
	}
}

func ResolveAdminEndpoint(h AdminHandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		admin, ok := middleware.GetCurrentAdmin(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		result, apiErr := h(ctx, admin)
		writeResult(ctx, result, apiErr)
	}
}

func ResolveVolunteerEndpoint(h VolunteerHandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		participant, ok := middleware.GetCurrentParticipant(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		result, apiErr := h(ctx, participant)
		writeResult(ctx, result, apiErr)
	}
}
