package api

import (
	"net/http"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirplaneTypeHandler struct {
	service catalog.AirplaneTypeUseCase
}

type airplaneTypeRequest struct {
	Name string `json:"name"`
}

func NewAirplaneTypeHandler(service catalog.AirplaneTypeUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t := &domain.AirplaneType{Name: req.Name}
	if err := h.service.Create(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *AirplaneTypeHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t := &domain.AirplaneType{ID: id, Name: req.Name}
	if err := h.service.Update(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *AirplaneTypeHandler) delete(c *gin.Context) {
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

type AirplaneHandler struct {
	service catalog.AirplaneUseCase
}

type airplaneRequest struct {
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType int64  `json:"airplane_type"`
}

func (r airplaneRequest) toDomain(id int64) *domain.Airplane {
	return &domain.Airplane{ID: id, Name: r.Name, Rows: r.Rows, SeatsInRow: r.SeatsInRow, AirplaneTypeID: r.AirplaneType}
}

func NewAirplaneHandler(service catalog.AirplaneUseCase) *AirplaneHandler {
	return &AirplaneHandler{service: service}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneHandler) list(c *gin.Context) {
	verr := &domain.ValidationError{}
	filter := domain.AirplaneFilter{Name: c.Query("name"), TypeID: queryInt(c, verr, "type")}
	if !verr.Empty() {
		writeError(c, verr)
		return
	}
	airplanes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplanes)
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	airplane, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	airplane := req.toDomain(0)
	if err := h.service.Create(c.Request.Context(), airplane); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplane)
}

func (h *AirplaneHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	airplane := req.toDomain(id)
	if err := h.service.Update(c.Request.Context(), airplane); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *AirplaneHandler) delete(c *gin.Context) {
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
