package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"festiloc/internal/infra/config"
	"festiloc/internal/infra/obs"
)

type CalendarHTTP interface {
	Month(c *gin.Context)
	Stats(c *gin.Context)
	Upcoming(c *gin.Context)
	Navigate(c *gin.Context)
}

type ReservationHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	ByClient(c *gin.Context)
	ByMonth(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
}

type ArticleHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

type ClientHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

type Handlers struct {
	Calendar     CalendarHTTP
	Reservation  ReservationHTTP
	Availability AvailabilityHTTP
	Article      ArticleHTTP
	Client       ClientHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Calendar != nil {
		api.GET("/calendar/month/:year/:month", h.Calendar.Month)
		api.GET("/calendar/month/:year/:month/stats", h.Calendar.Stats)
		api.GET("/calendar/upcoming", h.Calendar.Upcoming)
		api.POST("/calendar/navigate/:direction", h.Calendar.Navigate)
	}
	if h.Reservation != nil {
		api.GET("/reservations", h.Reservation.List)
		api.POST("/reservations", h.Reservation.Create)
		api.GET("/reservations/:id", h.Reservation.Get)
		api.PUT("/reservations/:id", h.Reservation.Update)
		api.DELETE("/reservations/:id", h.Reservation.Delete)
		api.GET("/clients/:id/reservations", h.Reservation.ByClient)
		api.GET("/months/:year/:month/reservations", h.Reservation.ByMonth)
	}
	if h.Availability != nil {
		api.GET("/availability", h.Availability.Check)
	}
	if h.Article != nil {
		api.GET("/articles", h.Article.List)
		api.GET("/articles/:id", h.Article.Get)
	}
	if h.Client != nil {
		api.GET("/clients", h.Client.List)
		api.GET("/clients/:id", h.Client.Get)
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func configureGinMode(env string) string {
	switch strings.ToLower(env) {
	case "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
