package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/dreyes/auth-service/internal/container"
	handlers "github.com/dreyes/auth-service/internal/interface/http"
	"github.com/dreyes/auth-service/internal/interface/middleware"
)

// Module wires the user HTTP handlers into routes.
// Public: POST /signup, POST /login
// Bearer-protected: GET /users/search

type Module struct {
	Handler *handlers.UserHandler
}

func New(h *handlers.UserHandler) *Module {
	return &Module{Handler: h}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Handler.SignUp)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(container.GetTokens()))
	{
		auth.GET("/users/search", m.Handler.Search)
	}
}
