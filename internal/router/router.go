package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"m42hub/internal/handler"
	"m42hub/internal/middleware"
)

type Deps struct {
	Log         *zap.Logger
	Parser      middleware.AccessParser
	Sessions    middleware.SessionStore
	Permissions middleware.PermissionChecker

	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Project    *handler.ProjectHandler
	Member     *handler.MemberHandler
	Status     handler.LookupRoutes
	Complexity handler.LookupRoutes
	Tool       handler.LookupRoutes
	Role       handler.LookupRoutes
	Topic      *handler.TopicHandler

	AuthPerMinute int
	AuthBurst     int
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log), middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(d.Parser, d.Sessions, d.Log)
	can := func(permission string) gin.HandlerFunc {
		return middleware.RequirePermission(d.Permissions, permission)
	}

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		limited := middleware.RateLimitMiddleware(d.AuthPerMinute, d.AuthBurst)
		authGroup.POST("/register", limited, d.Auth.Register)
		authGroup.POST("/login", limited, d.Auth.Login)
		authGroup.POST("/refresh", d.Auth.Refresh)
		authGroup.POST("/logout", auth, d.Auth.Logout)
	}

	userGroup := api.Group("/user")
	{
		userGroup.GET("", auth, can("user:get_all"), d.User.List)
		userGroup.GET("/me", auth, d.User.Me)
		userGroup.GET("/:username", d.User.ByUsername)
		userGroup.PATCH("/info", auth, d.User.EditInfo)
		userGroup.PATCH("/password", auth, d.User.ChangePassword)
		userGroup.PATCH("/profile-pic", auth, d.User.ChangeProfilePic)
		userGroup.PATCH("/status/:id", auth, can("user:change_status"), d.User.ChangeStatus)
	}

	projectGroup := api.Group("/project")
	{
		lookup(projectGroup.Group("/status"), d.Status, auth, can("status:create"))
		lookup(projectGroup.Group("/complexity"), d.Complexity, auth, can("complexity:create"))
		lookup(projectGroup.Group("/tool"), d.Tool, auth, can("tool:create"))
		lookup(projectGroup.Group("/role"), d.Role, auth, can("role:create"))

		topic := projectGroup.Group("/topic")
		lookup(topic, d.Topic, auth, can("topic:create"))
		topic.PATCH("/color/:id", auth, can("topic:change_color"), d.Topic.ChangeColor)

		member := projectGroup.Group("/member")
		member.GET("", auth, can("member:get_all"), d.Member.List)
		member.GET("/:id", auth, can("member:get_by_id"), d.Member.Get)
		member.GET("/user/:username", auth, can("member:get_by_username"), d.Member.ByUsername)
		member.POST("", auth, can("member:create"), d.Member.Create)
		member.POST("/apply", auth, can("member:create"), d.Member.Apply)
		member.PATCH("/approve/:id", auth, can("member:approve"), d.Member.Approve)
		member.PATCH("/reject/:id", auth, can("member:reject"), d.Member.Reject)

		projectGroup.GET("", d.Project.List)
		projectGroup.GET("/:id", d.Project.Get)
		projectGroup.POST("", auth, can("project:create"), d.Project.Create)
		projectGroup.PATCH("/:id", auth, can("project:update"), d.Project.Update)
	}

	return r
}

func lookup(g *gin.RouterGroup, h handler.LookupRoutes, guards ...gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", append(guards, h.Create)...)
}
