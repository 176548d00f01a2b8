package api

import (
	"net/http"

	"asanaflow/yoga-app/internal/catalog"
	"asanaflow/yoga-app/internal/domain"

	"github.com/gin-gonic/gin"
)

// PoseHandler serves the read-only pose catalog.
type PoseHandler struct {
	catalog *catalog.Catalog
}

// NewPoseHandler creates a new PoseHandler.
func NewPoseHandler(cat *catalog.Catalog) *PoseHandler {
	return &PoseHandler{catalog: cat}
}

// ListPoses godoc
// @Summary List catalog poses
// @Description Returns all poses, optionally filtered by category.
// @Tags Poses
// @Produce json
// @Param category query string false "Pose category"
// @Success 200 {array} domain.PoseRecord "Poses"
// @Router /poses [get]
func (h *PoseHandler) ListPoses(c *gin.Context) {
	var poses []domain.PoseRecord
	if category := c.Query("category"); category != "" {
		poses = h.catalog.ByCategory(domain.Category(category))
	} else {
		poses = h.catalog.All()
	}

	if poses == nil {
		c.JSON(http.StatusOK, []domain.PoseRecord{})
		return
	}
	c.JSON(http.StatusOK, poses)
}

// SearchPoses godoc
// @Summary Search catalog poses
// @Description Case-insensitive match over english name, sanskrit name, and targets.
// @Tags Poses
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} domain.PoseRecord "Matching poses"
// @Failure 400 {object} gin.H "Missing query"
// @Router /poses/search [get]
func (h *PoseHandler) SearchPoses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	poses := h.catalog.Search(query)
	if poses == nil {
		c.JSON(http.StatusOK, []domain.PoseRecord{})
		return
	}
	c.JSON(http.StatusOK, poses)
}
