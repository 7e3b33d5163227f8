package api

import (
	"net/http"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	service catalog.RouteUseCase
}

type routeRequest struct {
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    int   `json:"distance"`
}

func NewRouteHandler(service catalog.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *RouteHandler) list(c *gin.Context) {
	filter := domain.RouteFilter{Source: c.Query("source"), Destination: c.Query("destination")}
	routes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	route, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	route := &domain.Route{SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance}
	if err := h.service.Create(c.Request.Context(), route); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *RouteHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	route := &domain.Route{ID: id, SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance}
	if err := h.service.Update(c.Request.Context(), route); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) delete(c *gin.Context) {
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
