package api

import (
	"net/http"

	"github.com/Domenick1991/airport-service/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

type tokenRequest struct {
	Token string `json:"token"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

// Register mounts the public endpoints. me must sit behind Authenticate.
func (h *UserHandler) Register(public, me *gin.RouterGroup) {
	public.POST("/register", h.register)
	public.POST("/login", h.login)
	public.POST("/token/refresh", h.refresh)
	public.POST("/token/verify", h.verify)

	me.GET("", h.me)
	me.PUT("", h.updateMe)
	me.PATCH("", h.updateMe)
}

func (h *UserHandler) register(c *gin.Context) {
	var req users.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) login(c *gin.Context) {
	var req users.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *UserHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	access, err := h.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *UserHandler) verify(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.service.Verify(c.Request.Context(), req.Token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *UserHandler) me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), currentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) updateMe(c *gin.Context) {
	var req users.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.UpdateMe(c.Request.Context(), currentIdentity(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
