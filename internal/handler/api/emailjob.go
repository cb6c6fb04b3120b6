package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "room-reservation-api/internal/handler/dto/response"
	"room-reservation-api/internal/handler/httperr"
	"room-reservation-api/internal/pkg/errs"
	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmailJobHandler struct {
	commands commands.EmailJobCommands
	queries  queries.EmailJobQueries
}

func NewEmailJobHandler(cmds commands.EmailJobCommands, qs queries.EmailJobQueries) *EmailJobHandler {
	return &EmailJobHandler{commands: cmds, queries: qs}
}

// @Summary List email jobs
// @Description List queued, sent and failed email jobs (admin only)
// @Tags email-jobs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of jobs to return"
// @Success 200 {array} resdto.EmailJobResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /email-jobs [get]
func (h *EmailJobHandler) ListJobs(c *gin.Context) {
	var limit int32
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Errorf("bad limit %q", raw), "Invalid limit", nil)
			return
		}
		limit = int32(parsed)
	}

	views, err := h.queries.ListJobs(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromEmailJobViews(views))
}

// @Summary Get email job
// @Description Get delivery state of a single email job (admin only)
// @Tags email-jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} resdto.EmailJobResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /email-jobs/{id} [get]
func (h *EmailJobHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job ID", nil)
		return
	}

	view, err := h.queries.GetJob(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrEmailJobNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Email job not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromEmailJobView(view))
}

// @Summary Retry email job
// @Description Re-enqueue a failed email job (admin only)
// @Tags email-jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 202 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /email-jobs/{id}/retry [post]
func (h *EmailJobHandler) RetryJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job ID", nil)
		return
	}

	if err := h.commands.RetryJob(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailJobNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Email job not found", nil)
		case errors.Is(err, commands.ErrEmailJobNotFailed):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Only failed jobs can be re-enqueued", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
