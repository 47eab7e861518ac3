package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
)

func NewHandler(reg *registry.Registry, agg AggregatorInterface,
	markingStore MarkingStoreInterface, resultCache *ResultCache) *Handler {
	return &Handler{
		registry:    reg,
		aggregator:  agg,
		marking:     markingStore,
		resultCache: resultCache,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"projects":  len(h.registry.Projects()),
	})
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects := h.registry.Projects()

	out := make([]map[string]interface{}, 0, len(projects))
	for _, p := range projects {
		out = append(out, map[string]interface{}{
			"slug":            p.Slug,
			"name":            p.Name,
			"platform":        p.Platform,
			"beginnerLabels":  p.BeginnerLabels,
			"contributingUrl": p.ContributingURL,
			"pools":           p.Pools,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"projects": out,
			"pools":    h.registry.Pools(),
			"total":    len(out),
		},
	})
}

// GetIssues aggregates issues across a pool of projects. Individual
// project failures are reported in the payload, so the endpoint itself
// answers 200 unless the pool is unknown.
func (h *Handler) GetIssues(c *gin.Context) {
	pool := c.DefaultQuery("pool", "all")

	difficulty := issue.Difficulty("")
	if raw := c.Query("difficulty"); raw != "" {
		parsed, err := issue.ParseDifficulty(raw)
		if err != nil || parsed == issue.DifficultyUnknown {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid difficulty, expected beginner, intermediate or advanced"})
			return
		}
		difficulty = parsed
	}

	cacheKey := pool + "|" + string(difficulty)
	if result, ok := h.resultCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"issues": result.Issues,
				"count":  len(result.Issues),
				"errors": result.Errors,
				"cached": true,
			},
		})
		return
	}

	result, err := h.aggregator.Aggregate(c.Request.Context(), pool, difficulty)
	if err != nil {
		var notFound *issue.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		slog.Error("Aggregation failed", "pool", pool, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Aggregation failed"})
		return
	}

	h.resultCache.Set(cacheKey, result)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"issues": result.Issues,
			"count":  len(result.Issues),
			"errors": result.Errors,
			"cached": false,
		},
	})
}

func (h *Handler) GetProjectIssues(c *gin.Context) {
	slug := c.Param("id")

	issues, err := h.aggregator.AggregateOne(c.Request.Context(), slug)
	if err != nil {
		status := http.StatusBadGateway
		var notFound *issue.NotFoundError
		var precondition *issue.PreconditionError
		switch {
		case errors.As(err, &notFound):
			status = http.StatusNotFound
		case errors.As(err, &precondition):
			status = http.StatusServiceUnavailable
		}
		slog.Error("Project fetch failed", "project", slug, "error", err)
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"issues": issues,
			"count":  len(issues),
		},
	})
}

type markRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func (h *Handler) MarkIssue(c *gin.Context) {
	issueID := c.Param("id")

	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body, expected {\"status\": \"ignored\"|\"process\"}"})
		return
	}

	status, err := issue.ParseMarkStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status, expected ignored or process"})
		return
	}

	result, err := h.marking.Mark(issueID, status, req.Reason)
	if err != nil {
		slog.Error("Failed to mark issue", "issue_id", issueID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (h *Handler) UnmarkIssue(c *gin.Context) {
	issueID := c.Param("id")

	removed, err := h.marking.Unmark(issueID)
	if err != nil {
		slog.Error("Failed to unmark issue", "issue_id", issueID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"issueId": issueID,
			"removed": removed,
		},
	})
}

func (h *Handler) ListMarked(c *gin.Context) {
	raw := c.DefaultQuery("status", "ignored")
	status, err := issue.ParseMarkStatus(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status, expected ignored or process"})
		return
	}

	list, err := h.marking.ListMarked(status)
	if err != nil {
		slog.Error("Failed to list marked issues", "status", status, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":    status,
			"issues":    list.Issues,
			"count":     len(list.Issues),
			"updatedAt": list.UpdatedAt,
		},
	})
}

