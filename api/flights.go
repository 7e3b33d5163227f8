package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crews         []int64   `json:"crews"`
}

func (r flightRequest) toDomain(id int64) *domain.Flight {
	return &domain.Flight{
		ID:            id,
		RouteID:       r.Route,
		AirplaneID:    r.Airplane,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		CrewIDs:       r.Crews,
	}
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	verr := &domain.ValidationError{}
	filter := domain.FlightFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Airplane:    c.Query("airplane"),
		Departure:   queryDate(c, verr, "departure"),
		Arrival:     queryDate(c, verr, "arrival"),
	}
	if !verr.Empty() {
		writeError(c, verr)
		return
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.Create(c.Request.Context(), req.toDomain(0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.Update(c.Request.Context(), req.toDomain(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
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
