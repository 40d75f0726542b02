package http

import "github.com/gin-gonic/gin"

// Register registers the board routes. rg is expected to carry the
// authentication and WithUser middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	board := rg.Group("/board")
	board.GET("/", h.GetBoard)

	tasks := board.Group("/section/:section_id/task")
	tasks.POST("", h.AddTask)
	tasks.PUT("/:task_id", h.UpdateTask)
	tasks.DELETE("/:task_id", h.DeleteTask)
	tasks.POST("/:task_id/promote", h.PromoteTask)
	tasks.POST("/:task_id/demote", h.DemoteTask)
}
