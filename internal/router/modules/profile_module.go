package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/devconnector-api/internal/interface/http"
)

// ProfileModule wires profile reads (public) and the owner-only writes.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Auth    gin.HandlerFunc
}

func NewProfileModule(h *handlers.ProfileHandler, auth gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Handler: h, Auth: auth}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	p := rg.Group("/profile")

	// Public
	p.GET("", m.Handler.List)
	p.GET("/user/:user_id", m.Handler.ByUser)
	p.GET("/github/:username", m.Handler.Github)
	p.GET("/search", m.Handler.Search)

	// Protected
	auth := p.Group("")
	auth.Use(m.Auth)
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("", m.Handler.Upsert)
		auth.DELETE("", m.Handler.Delete)
		auth.PUT("/experience", m.Handler.AddExperience)
		auth.DELETE("/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/education", m.Handler.AddEducation)
		auth.DELETE("/education/:edu_id", m.Handler.RemoveEducation)
	}
}
