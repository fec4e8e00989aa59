package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yourplaces/api/internal/interface/http"
	"github.com/yourplaces/api/internal/interface/middleware"
	"github.com/yourplaces/api/pkg/helpers"
)

// PlaceModule wires the place routes.
// Public: GET /api/places/:pid, GET /api/places/user/:uid
// Protected (bearer token): POST /api/places, PATCH /api/places/:pid, DELETE /api/places/:pid
type PlaceModule struct {
	Handler *handlers.PlaceHandler
	JWT     *helpers.JWTManager
}

func NewPlaceModule(h *handlers.PlaceHandler, jwt *helpers.JWTManager) *PlaceModule {
	return &PlaceModule{Handler: h, JWT: jwt}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	rg.GET("/places/:pid", m.Handler.GetPlace)
	rg.GET("/places/user/:uid", m.Handler.GetPlacesByUser)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/places", m.Handler.CreatePlace)
		auth.PATCH("/places/:pid", m.Handler.UpdatePlace)
		auth.DELETE("/places/:pid", m.Handler.DeletePlace)
	}
}
