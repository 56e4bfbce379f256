package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/services"
)

type DisciplineHandler struct {
	log            *logger.Logger
	catalogService services.CatalogService
}

func NewDisciplineHandler(log *logger.Logger, catalogService services.CatalogService) *DisciplineHandler {
	return &DisciplineHandler{
		log:            log.With("handler", "DisciplineHandler"),
		catalogService: catalogService,
	}
}

// ListDisciplines returns the resolved curriculum graph. An unavailable
// catalog answers 200 with an empty graph; consumers treat that as "no
// data", not as an empty curriculum.
func (h *DisciplineHandler) ListDisciplines(c *gin.Context) {
	graph, err := h.catalogService.Graph(c.Request.Context())
	if err != nil {
		h.log.Warn("Serving empty graph, catalog unavailable", "error", err)
	}
	RespondOK(c, graph)
}

// RefreshDisciplines drops the cached snapshot and refetches the catalog.
func (h *DisciplineHandler) RefreshDisciplines(c *gin.Context) {
	graph, err := h.catalogService.Refresh(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadGateway, "catalog_refresh_failed", err)
		return
	}
	RespondOK(c, graph)
}

// GetDiscipline passes the upstream discipline detail through untouched.
func (h *DisciplineHandler) GetDiscipline(c *gin.Context) {
	raw, err := h.catalogService.DisciplineDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadGateway, "discipline_detail_failed", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// GetClass passes the upstream class/section detail through untouched.
func (h *DisciplineHandler) GetClass(c *gin.Context) {
	classNumber, err := strconv.Atoi(c.Param("classNumber"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_class_number", err)
		return
	}
	raw, err := h.catalogService.ClassDetail(c.Request.Context(), c.Param("id"), classNumber)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "class_detail_failed", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
