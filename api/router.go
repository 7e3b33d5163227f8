package api

import (
	"net/http"

	"github.com/Domenick1991/airport-service/internal/service/catalog"
	"github.com/Domenick1991/airport-service/internal/service/flights"
	"github.com/Domenick1991/airport-service/internal/service/orders"
	"github.com/Domenick1991/airport-service/internal/service/users"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const swaggerSpec = "/swagger/airport.swagger.json"

type RouterDeps struct {
	Log  *zap.Logger
	Auth Authenticator

	Airports      catalog.AirportUseCase
	Routes        catalog.RouteUseCase
	AirplaneTypes catalog.AirplaneTypeUseCase
	Airplanes     catalog.AirplaneUseCase
	Crews         catalog.CrewUseCase
	Flights       flights.FlightUseCase
	Orders        orders.OrderUseCase
	Users         users.UserUseCase

	SwaggerDir string
	MediaDir   string
	MediaURL   string
}

// NewRouter wires every HTTP endpoint:
//
//	/api/user/...        registration, tokens, profile
//	/api/airport/...     catalog (staff writes), flights, orders
//	/media/...           uploaded images
//	/docs/index.html     Swagger UI
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(deps.Log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	user := api.Group("/user")
	NewUserHandler(deps.Users).Register(user, user.Group("/me", Authenticate(deps.Auth)))

	airport := api.Group("/airport", Authenticate(deps.Auth))
	staff := airport.Group("", StaffForWrites())
	NewAirportHandler(deps.Airports).Register(staff.Group("/airports"))
	NewRouteHandler(deps.Routes).Register(staff.Group("/routes"))
	NewAirplaneTypeHandler(deps.AirplaneTypes).Register(staff.Group("/airplane-types"))
	NewAirplaneHandler(deps.Airplanes).Register(staff.Group("/airplanes"))
	NewCrewHandler(deps.Crews).Register(staff.Group("/crews"))
	NewFlightHandler(deps.Flights).Register(staff.Group("/flights"))
	NewOrderHandler(deps.Orders).Register(airport.Group("/orders"))

	if deps.MediaDir != "" && deps.MediaURL != "" {
		router.Static(deps.MediaURL, deps.MediaDir)
	}
	if deps.SwaggerDir != "" {
		router.Static("/swagger", deps.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerSpec))))
	}
	return router
}
