package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service"
)

// @Summary Create a task
// @Description Creates a Pending task. Priority defaults to Medium, slaMinutes to the configured default.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param task body CreateTaskRequest true "Task"
// @Success 201 {object} TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /tasks [post]
func (h *Handler) createTask(c *gin.Context) {
	log := h.log("createTask")
	var input CreateTaskRequest
	if !h.bind(c, log, &input) {
		return
	}

	task := CreateTaskRequestToModel(input)
	if err := h.services.Tasks.CreateTask(c.Request.Context(), task); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, TaskToResponse(*task))
}

// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Pending, In Progress, Done or Verified"
// @Param zoneId query string false "Zone ID"
// @Param assignedTo query string false "Staff or team ID"
// @Success 200 {array} TaskResponse
// @Router /tasks [get]
func (h *Handler) listTasks(c *gin.Context) {
	filter := service.TaskFilter{
		Status:     models.TaskStatus(c.Query("status")),
		ZoneID:     c.Query("zoneId"),
		AssignedTo: c.Query("assignedTo"),
	}
	tasks, err := h.services.Tasks.ListTasks(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, h.log("listTasks"), err)
		return
	}
	c.JSON(http.StatusOK, TasksToResponses(tasks))
}

// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.services.Tasks.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log("getTask").WithField("task_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, TaskToResponse(*task))
}

// transitionTask выполняет переход и отвечает обновленной задачей. Недопустимый переход дает 409.
func (h *Handler) transitionTask(c *gin.Context, method string, do func(ctx context.Context, id string) (*models.Task, error)) {
	task, err := do(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log(method).WithField("task_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, TaskToResponse(*task))
}

// @Summary Start a task
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Router /tasks/{id}/start [post]
func (h *Handler) startTask(c *gin.Context) {
	h.transitionTask(c, "startTask", h.services.Tasks.StartTask)
}

// @Summary Mark a task done
// @Description Requires at least one after photo; the set replaces any previous one.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Param evidence body MarkDoneRequest true "Evidence"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} ErrorResponse "Missing evidence"
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Router /tasks/{id}/done [post]
func (h *Handler) markTaskDone(c *gin.Context) {
	log := h.log("markTaskDone").WithField("task_id", c.Param("id"))
	var input MarkDoneRequest
	if !h.bind(c, log, &input) {
		return
	}
	h.transitionTask(c, "markTaskDone", func(ctx context.Context, id string) (*models.Task, error) {
		return h.services.Tasks.MarkDone(ctx, id, input.PhotosAfter)
	})
}

// @Summary Verify a task
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Router /tasks/{id}/verify [post]
func (h *Handler) verifyTask(c *gin.Context) {
	h.transitionTask(c, "verifyTask", h.services.Tasks.VerifyTask)
}

// @Summary Reject a task
// @Description Sends a Done task back to In Progress; evidence is kept.
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Router /tasks/{id}/reject [post]
func (h *Handler) rejectTask(c *gin.Context) {
	h.transitionTask(c, "rejectTask", h.services.Tasks.RejectTask)
}

// @Summary Task statistics
// @Description Totals by status, completion percentage and SLA compliance of verified tasks.
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} lifecycle.Stats
// @Router /tasks/stats [get]
func (h *Handler) taskStats(c *gin.Context) {
	stats, err := h.services.Tasks.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("taskStats"), err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
