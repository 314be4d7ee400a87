package webserver

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionUserKey = "username"

// RequireLogin redirects unauthenticated requests to the login page.
func (s *WebServer) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(sessionName, c)
		if err != nil || sess.Values[sessionUserKey] == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

func (s *WebServer) loginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{})
}

func (s *WebServer) loginSubmit(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	userOk := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Web.AdminUsername)) == 1
	passOk := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Web.AdminPassword)) == 1
	if !userOk || !passOk {
		zap.L().Warn("failed login attempt", zap.String("username", username))
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"Error": "Invalid username or password",
		})
	}

	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessionUserKey] = username
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	zap.L().Info("operator logged in", zap.String("username", username))
	return c.Redirect(http.StatusFound, "/products")
}

func (s *WebServer) logout(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err == nil {
		delete(sess.Values, sessionUserKey)
		sess.Options.MaxAge = -1
		_ = sess.Save(c.Request(), c.Response())
	}
	return c.Redirect(http.StatusFound, "/login")
}
