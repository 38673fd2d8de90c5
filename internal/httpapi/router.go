// Package httpapi exposes the service layer as a JSON REST API.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giftcircle/giftcircle/internal/auth"
	"github.com/giftcircle/giftcircle/internal/directory"
	"github.com/giftcircle/giftcircle/internal/middleware"
	"github.com/giftcircle/giftcircle/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	Auth          *service.AuthService
	Items         *service.ItemService
	Proposals     *service.ProposalService
	Money         *service.MoneyService
	Contributions *service.ContributionService
	Questions     *service.QuestionService
	Directory     *directory.Directory
	JWT           *auth.JWTManager
}

// Router assembles the gin engine: middleware chain, public endpoints, and
// the authenticated /api group.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(s.JWT))

	authed.GET("/auth/me", s.me)
	authed.PUT("/auth/profile", s.updateProfile)

	authed.GET("/users", s.listUsers)
	authed.GET("/users/:id/items", s.listUserItems)

	authed.POST("/items", s.createItem)
	authed.GET("/items", s.listItems)
	authed.GET("/items/:id", s.getItem)
	authed.PUT("/items/:id", s.updateItem)
	authed.DELETE("/items/:id", s.deleteItem)
	authed.PUT("/items/:id/intent", s.setIntent)
	authed.DELETE("/items/:id/intent", s.clearIntent)

	authed.GET("/contributions", s.listContributions)

	authed.POST("/proposals", s.createProposal)
	authed.GET("/proposals", s.listProposals)
	authed.GET("/proposals/:id", s.getProposal)
	authed.PUT("/proposals/:id", s.updateProposal)
	authed.DELETE("/proposals/:id", s.deleteProposal)
	authed.POST("/proposals/:id/accept", s.acceptProposal)
	authed.POST("/proposals/:id/decline", s.declineProposal)
	authed.POST("/proposals/:id/cancel", s.cancelProposal)
	authed.POST("/proposals/:id/settle", s.settleProposal)

	authed.POST("/money", s.createMoneyEntry)
	authed.GET("/money", s.listMoneyEntries)
	authed.PUT("/money/:id", s.updateMoneyEntry)
	authed.DELETE("/money/:id", s.deleteMoneyEntry)

	authed.POST("/questions", s.askQuestion)
	authed.GET("/questions", s.listQuestions)
	authed.PUT("/questions/:id/answer", s.answerQuestion)

	return r
}
