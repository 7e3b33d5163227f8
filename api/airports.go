package api

import (
	"net/http"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirportHandler struct {
	service catalog.AirportUseCase
}

type airportRequest struct {
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func NewAirportHandler(service catalog.AirportUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.POST("/:id/upload-image", h.uploadImage)
}

func (h *AirportHandler) list(c *gin.Context) {
	airports, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	airport, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) create(c *gin.Context) {
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	airport := &domain.Airport{Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := h.service.Create(c.Request.Context(), airport); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airport)
}

func (h *AirportHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	airport := &domain.Airport{ID: id, Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := h.service.Update(c.Request.Context(), airport); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) delete(c *gin.Context) {
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

func (h *AirportHandler) uploadImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		writeError(c, domain.NewValidationError("image", "no file was submitted"))
		return
	}
	f, err := file.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	airport, err := h.service.UploadImage(c.Request.Context(), id, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}
