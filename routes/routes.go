package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hotel-rooms/controllers"
	"hotel-rooms/metrics"
	"hotel-rooms/middleware"
	"hotel-rooms/services"
	"hotel-rooms/templates"
)

type Options struct {
	CorsOrigins []string
	Metrics     *metrics.Metrics
	Log         *zap.Logger
}

// SetupRouter wires the JSON API, the HTML pages and the operational
// endpoints around one inventory.
func SetupRouter(inv *services.InventoryService, opts Options) (*gin.Engine, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	origins := opts.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	tmpl, err := templates.Parse()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": len(inv.List())})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	rc := controllers.NewRoomController(inv, log)
	cc := controllers.NewCategoryController(inv)
	pc := controllers.NewPageController(inv, log)

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			// static segment registered before /:id
			rooms.GET("/availability", rc.GetAvailability)
			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("", rc.CreateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		api.POST("/checkin", rc.CheckIn)
		api.POST("/checkout", rc.CheckOut)
		api.GET("/categories", cc.GetCategories)
	}

	r.GET("/", pc.Menu)
	pages := r.Group("/rooms")
	{
		pages.GET("/view", pc.ViewRooms)
		pages.GET("/create", pc.CreateForm)
		pages.POST("/create", pc.CreateSubmit)
		pages.GET("/update", pc.UpdateForm)
		pages.POST("/update", pc.UpdateSubmit)
		pages.GET("/delete", pc.DeleteForm)
		pages.POST("/delete", pc.DeleteSubmit)
	}
	r.GET("/checkin", pc.CheckInForm)
	r.POST("/checkin", pc.CheckInSubmit)
	r.GET("/checkout", pc.CheckOutForm)
	r.POST("/checkout", pc.CheckOutSubmit)

	return r, nil
}
