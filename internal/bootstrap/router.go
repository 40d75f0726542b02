package bootstrap

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	httpapi "github.com/GoSim-25-26J-441/kanban-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/auth"
	boardhttp "github.com/GoSim-25-26J-441/kanban-backend/internal/board/http"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/users"
)

const ServiceName = "kanban-backend"

type RouterDeps struct {
	Config       *config.Config
	Logger       *log.Logger
	Boards       boardhttp.BoardService
	Users        users.Store
	Authenticate gin.HandlerFunc
	DB           httpapi.Pinger
	Cache        httpapi.Pinger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID, "X-User-Id"},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func userKey(c *gin.Context) string {
	if id, ok := auth.UserID(c); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	return ""
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.Config.Server.AllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(ServiceName, dep.Config.App.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("")
	api.Use(dep.Authenticate, auth.WithUser(dep.Users))
	if dep.Config.RateLimit.RPS > 0 {
		limiter := middleware.NewRateLimiter(dep.Config.RateLimit.RPS, dep.Config.RateLimit.Burst)
		api.Use(limiter.Middleware(userKey))
	}

	boardhttp.NewHandler(dep.Boards, dep.Logger).Register(api)

	return r
}
