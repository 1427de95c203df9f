package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gigboard-dev/gigboard/internal/handlers"
	"github.com/gigboard-dev/gigboard/internal/middleware"
	"github.com/gigboard-dev/gigboard/internal/services"
	"github.com/gigboard-dev/gigboard/internal/session"
	"github.com/gigboard-dev/gigboard/internal/types"
)

type Deps struct {
	Auth     *handlers.AuthHandler
	Gigs     *handlers.GigHandler
	WS       *handlers.WSHandler
	Sessions session.Store
	Users    services.UserStore
	Limiter  *middleware.RateLimiter
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Browser pages
	r.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/login")
	})
	r.POST("/signup", deps.Auth.Signup)
	r.POST("/login", deps.Auth.Login)
	r.GET("/logout", deps.Auth.Logout)
	r.GET("/dashboard", deps.Auth.Dashboard)

	sessionAuth := middleware.SessionAuth(deps.Sessions, deps.Users)

	api := r.Group("/api", deps.Limiter.Handler())
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/gigs", deps.Gigs.ListGigs)

		// Bearer-only: the mobile/API surface for workers.
		api.POST("/apply-gig", middleware.BearerAuth(deps.Users), deps.Gigs.ApplyToGig)

		authed := api.Group("", sessionAuth)
		{
			authed.POST("/create-gig", deps.Gigs.CreateGig)
			authed.POST("/confirm-payment", deps.Gigs.ConfirmPayment)
			authed.POST("/assign-gig", deps.Gigs.AssignGig)
			authed.GET("/worker-gigs", deps.Gigs.WorkerGigs)
			authed.GET("/notifications", deps.Gigs.Notifications)
			authed.GET("/ws", deps.WS.Notifications)
		}
	}

	return r
}
