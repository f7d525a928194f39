package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghatak0982/fleetcare/internal/engine"
	"github.com/ghatak0982/fleetcare/pkg/response"
)

// EvaluationHandler exposes the manual evaluation trigger.
type EvaluationHandler struct {
	scheduler *engine.Scheduler
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(scheduler *engine.Scheduler) *EvaluationHandler {
	return &EvaluationHandler{scheduler: scheduler}
}

// Run executes one evaluation pass immediately and reports its summary.
// Partial failures still return the summary: failed owners are retried on the
// next scheduled tick.
func (h *EvaluationHandler) Run(c *gin.Context) {
	summary, err := h.scheduler.RunOnce(requestContext(c))
	if err != nil {
		response.Success(c, http.StatusOK, gin.H{
			"summary": summary,
			"partial": true,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}
