package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

type createOrderRequest struct {
	Tickets []domain.TicketSpec `json:"tickets"`
}

type orderListResponse struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []domain.Order `json:"results"`
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/tickets/:ticketID/boarding-pass.png", h.boardingPass)
}

func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.service.Create(c.Request.Context(), currentIdentity(c), req.Tickets)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) list(c *gin.Context) {
	verr := &domain.ValidationError{}
	input := orders.ListInput{
		Page:     int(queryInt(c, verr, "page")),
		PageSize: int(queryInt(c, verr, "page_size")),
		OrderID:  queryInt(c, verr, "order"),
	}
	if !verr.Empty() {
		writeError(c, verr)
		return
	}

	page, err := h.service.List(c.Request.Context(), currentIdentity(c), input)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := orderListResponse{Count: page.Count, Results: page.Orders}
	if resp.Results == nil {
		resp.Results = []domain.Order{}
	}
	if page.HasNext() {
		next := pageURL(c, page.Page+1)
		resp.Next = &next
	}
	if page.Page > 1 {
		prev := pageURL(c, page.Page-1)
		resp.Previous = &prev
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.service.Get(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), currentIdentity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) boardingPass(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketID")
	if !ok {
		return
	}
	png, err := h.service.BoardingPass(c.Request.Context(), currentIdentity(c), orderID, ticketID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// pageURL is the absolute URL of the current request with page replaced.
// The first page drops the parameter.
func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
	q := c.Request.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
