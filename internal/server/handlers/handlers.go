package handlers

import (
	"net/http"
	"strings"

	"github.com/Thenathanb/CourseMate-UH/internal/resolver"
	"github.com/Thenathanb/CourseMate-UH/internal/types"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	resolver *resolver.Resolver
}

func New(res *resolver.Resolver) *Handler {
	return &Handler{resolver: res}
}

// Health responds with a simple service heartbeat.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"message": "CourseMate API is running",
	})
}

// ResolveProfessor resolves a raw instructor name to a ratings profile.
func (h *Handler) ResolveProfessor(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name parameter is required"})
		return
	}

	result := h.resolver.ResolveProfessorProfile(c.Request.Context(), name)
	c.JSON(http.StatusOK, result)
}

// HoverData joins reviews, grade distribution, and grade profile link for
// an instructor. Individual branch failures degrade inside the resolver;
// this endpoint always answers 200 for a well-formed request.
func (h *Handler) HoverData(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name parameter is required"})
		return
	}

	teacherID := strings.TrimSpace(c.Query("teacherId"))
	course := parseCourse(c.Query("subject"), c.Query("catalog"))

	data := h.resolver.ResolveHoverData(c.Request.Context(), name, teacherID, course)
	c.JSON(http.StatusOK, data)
}

// ClearCache wipes every cached lookup result.
func (h *Handler) ClearCache(c *gin.Context) {
	result := h.resolver.ClearCache()
	c.JSON(http.StatusOK, result)
}

func parseCourse(subject, catalog string) *types.CourseInfo {
	subject = strings.ToUpper(strings.TrimSpace(subject))
	catalog = strings.TrimSpace(catalog)
	if subject == "" && catalog == "" {
		return nil
	}
	return &types.CourseInfo{Subject: subject, Catalog: catalog}
}
