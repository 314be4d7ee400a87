package webserver

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const flashKey = "success_messages"

// AddFlash queues a one-time success message for the next rendered page.
func AddFlash(c echo.Context, message string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		zap.L().Warn("failed to open session for flash", zap.Error(err))
		return
	}
	sess.AddFlash(message, flashKey)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("failed to save flash message", zap.Error(err))
	}
}

// Flashes drains and returns the queued success messages.
func Flashes(c echo.Context) []string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}
	// reading flashes mutates the session, persist the removal
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("failed to clear flash messages", zap.Error(err))
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
