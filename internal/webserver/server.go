package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"tinymart/config"
	"tinymart/internal/catalog"
)

const sessionName = "tinymart_session"

// WebServer serves the rendered catalog admin.
type WebServer struct {
	cfg     *config.AppConfig
	service catalog.CatalogService
	root    *echo.Echo
}

func NewWebServer(cfg *config.AppConfig, service catalog.CatalogService) *WebServer {
	s := &WebServer{
		cfg:     cfg,
		service: service,
		root:    echo.New(),
	}
	s.init()
	return s
}

func (s *WebServer) init() {
	s.root.HideBanner = true
	s.root.Renderer = NewTemplateRenderer()
	s.root.HTTPErrorHandler = s.htmlErrorHandler

	s.root.Use(middleware.Recover())
	s.root.Use(session.Middleware(sessions.NewCookieStore([]byte(s.cfg.Web.Secret))))
	s.root.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))

	s.registerRoutes()
}

func (s *WebServer) registerRoutes() {
	s.root.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/products")
	})

	s.root.GET("/login", s.loginForm)
	s.root.POST("/login", s.loginSubmit)
	s.root.GET("/logout", s.logout)

	// The login requirement is a group-level policy so every product route
	// carries it, GET and POST alike.
	g := s.root.Group("/products", s.RequireLogin)
	g.GET("", s.listProducts)
	g.GET("/create", s.createProductForm)
	g.POST("/create", s.createProductSubmit)
	g.GET("/:product_id/update", s.updateProductForm)
	g.POST("/:product_id/update", s.updateProductSubmit)
	g.GET("/:product_id/delete", s.deleteProductConfirm)
	g.POST("/:product_id/delete", s.deleteProductSubmit)
}

// Echo exposes the underlying router (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Start begins serving and blocks until the listener fails.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return s.root.Start(addr)
}

func (s *WebServer) htmlErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}

	if c.Response().Committed {
		return
	}
	if rerr := c.Render(code, "error.html", echo.Map{"Code": code, "Message": message}); rerr != nil {
		_ = c.String(code, message)
	}
}
