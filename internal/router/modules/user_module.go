package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yourplaces/api/internal/interface/http"
)

// UserModule wires the account routes.
// Public: GET /api/users, POST /api/users/signup, POST /api/users/login
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users", m.Handler.GetUsers)
	rg.POST("/users/signup", m.Handler.Signup)
	rg.POST("/users/login", m.Handler.Login)
}
