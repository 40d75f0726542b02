package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/auth"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

type Handler struct {
	svc    BoardService
	logger *log.Logger
}

func NewHandler(svc BoardService, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) userID(c *gin.Context) (int64, bool) {
	uid, ok := auth.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{OK: false, Error: "user not authenticated"})
	}
	return uid, ok
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// taskPath resolves user, section and task ids for the task-scoped routes.
func (h *Handler) taskPath(c *gin.Context) (uid, sectionID, taskID int64, ok bool) {
	if uid, ok = h.userID(c); !ok {
		return
	}
	if sectionID, ok = pathID(c, "section_id"); !ok {
		return
	}
	taskID, ok = pathID(c, "task_id")
	return
}

func bindText(c *gin.Context) (string, bool) {
	var body taskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return "", false
	}
	if body.Text == nil {
		badRequest(c, "text is required")
		return "", false
	}
	return *body.Text, true
}

// GetBoard returns the caller's board, provisioning it on first access.
func (h *Handler) GetBoard(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) AddTask(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "section_id")
	if !ok {
		return
	}
	text, ok := bindText(c)
	if !ok {
		return
	}

	task, err := h.svc.AddTask(c.Request.Context(), uid, sectionID, text)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, domain.NewTaskSnapshot(*task))
}

func (h *Handler) UpdateTask(c *gin.Context) {
	uid, sectionID, taskID, ok := h.taskPath(c)
	if !ok {
		return
	}
	text, ok := bindText(c)
	if !ok {
		return
	}

	task, err := h.svc.UpdateTask(c.Request.Context(), uid, sectionID, taskID, text)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewTaskSnapshot(*task))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	uid, sectionID, taskID, ok := h.taskPath(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(c.Request.Context(), uid, sectionID, taskID); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, okResponse{OK: true, Message: "Task deleted"})
}

func (h *Handler) PromoteTask(c *gin.Context) {
	uid, sectionID, taskID, ok := h.taskPath(c)
	if !ok {
		return
	}

	if err := h.svc.Promote(c.Request.Context(), uid, sectionID, taskID); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, okResponse{OK: true, Message: "Task promoted"})
}

func (h *Handler) DemoteTask(c *gin.Context) {
	uid, sectionID, taskID, ok := h.taskPath(c)
	if !ok {
		return
	}

	if err := h.svc.Demote(c.Request.Context(), uid, sectionID, taskID); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, okResponse{OK: true, Message: "Task demoted"})
}
