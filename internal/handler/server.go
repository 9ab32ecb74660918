package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/zizouhuweidi/trivia/internal/service"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

var (
	allowHeaders = []string{echo.HeaderContentType, echo.HeaderAuthorization, "true"}
	allowMethods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}
)

// NewServer builds the echo instance serving the trivia API. hub may be nil,
// in which case the event feed is not mounted.
func NewServer(trivia *service.TriviaService, hub *ws.Hub, db Pinger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(e.DefaultHTTPErrorHandler)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: allowHeaders,
		AllowMethods: allowMethods,
	}))
	e.Use(corsHeaders)

	// Routes
	NewCategoryHandler(trivia).Register(e)
	NewQuestionHandler(trivia).Register(e)
	NewQuizHandler(trivia).Register(e)
	NewHealthHandler(db).Register(e)
	if hub != nil {
		NewWebSocketHandler(hub).Register(e)
	}

	return e
}

// corsHeaders sets the CORS headers on every response, not only on preflight
func corsHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	headers := strings.Join(allowHeaders, ",")
	methods := strings.Join(allowMethods, ",")
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowHeaders, headers)
		h.Set(echo.HeaderAccessControlAllowMethods, methods)
		return next(c)
	}
}
