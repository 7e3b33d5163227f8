package api

import (
	"net/http"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CrewHandler struct {
	service catalog.CrewUseCase
}

type crewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewCrewHandler(service catalog.CrewUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *CrewHandler) list(c *gin.Context) {
	crews, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, crews)
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	crew, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, crew)
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	crew := &domain.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.Create(c.Request.Context(), crew); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crew)
}

func (h *CrewHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	crew := &domain.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.Update(c.Request.Context(), crew); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, crew)
}

func (h *CrewHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
