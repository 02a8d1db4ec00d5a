package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khryptorgraphics/mcpscheduler/internal/schedulererrors"
	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
	"github.com/khryptorgraphics/mcpscheduler/pkg/mcp"
)

// scheduleRequest is the POST /v1/schedules request body: a task graph, an
// availability timeline, a memory limit, and an optional warm-start
// binding, matching §6's external interfaces exactly.
type scheduleRequest struct {
	Tasks                []graph.TaskRecord          `json:"tasks"`
	Thresholds           []int                       `json:"thresholds"`
	Low                  [][]int                     `json:"low"`
	High                 [][]int                     `json:"high"`
	MemoryLimit          int                         `json:"memory_limit"`
	CommunicationPenalty int                         `json:"communication_penalty"`
	Binding              *struct {
		Order [][2]int `json:"order"`
		UB    int      `json:"ub"`
	} `json:"binding,omitempty"`
}

type scheduleResponse struct {
	Schedule mcp.ScheduleDocument `json:"schedule"`
	Makespan int                  `json:"makespan"`
	Binding  struct {
		Order [][2]int `json:"order"`
		UB    int      `json:"ub"`
	} `json:"binding"`
}

func (s *Server) handleSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := mcp.BuildGraph(req.Tasks)
	if err != nil {
		s.metrics.observeFailure()
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	timeline, err := mcp.TimelineFromThresholds(req.Thresholds, req.Low, req.High)
	if err != nil {
		s.metrics.observeFailure()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := mcp.Options{MemoryLimit: req.MemoryLimit, CommunicationPenalty: req.CommunicationPenalty}
	if req.Binding != nil {
		binding := mcp.BindingFromJSON(req.Binding.Order, req.Binding.UB)
		opts.WarmStart = &binding
	}

	start := time.Now()
	result, err := mcp.Schedule(g, timeline, opts)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.observeFailure()
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	s.metrics.observeSuccess(result.Makespan, result.UB, elapsed.Seconds())

	resp := scheduleResponse{
		Schedule: mcp.EncodeSchedule(result, timeline),
		Makespan: result.Makespan,
	}
	resp.Binding.Order, resp.Binding.UB = mcp.EncodeBinding(result)
	c.JSON(http.StatusOK, resp)
}

// statusFor maps one of the three fatal failure kinds to an HTTP status: a
// malformed warm-start is the caller's fault in a way a client can correct
// by dropping it (400), while an invalid graph or an infeasible memory
// class is a well-formed-but-unprocessable request (422).
func statusFor(err error) int {
	se, ok := err.(*schedulererrors.SchedulerError)
	if ok && se.Type == schedulererrors.KindMalformedWarmStart {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
