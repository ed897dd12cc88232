package controllers

import (
	"encoding/gob"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const sessionName = "pizzeria"

// Flash message categories rendered by the layout template
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

// NewSessionStore returns the cookie store holding flash messages
func NewSessionStore(secret string) sessions.Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
	}
	return store
}

func addFlash(c *gin.Context, store sessions.Store, flash FlashMessage) {
	session, err := store.Get(c.Request, sessionName)
	if err != nil {
		logrus.WithError(err).Warn("Discarding unreadable session cookie")
	}
	session.AddFlash(flash)
	if err := session.Save(c.Request, c.Writer); err != nil {
		logrus.WithError(err).Error("Failed to save flash message")
	}
}

// popFlashes must run before anything is written to the response
func popFlashes(c *gin.Context, store sessions.Store) []FlashMessage {
	session, err := store.Get(c.Request, sessionName)
	if err != nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(c.Request, c.Writer); err != nil {
		logrus.WithError(err).Error("Failed to clear flash messages")
	}

	flashes := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(FlashMessage); ok {
			flashes = append(flashes, msg)
		}
	}
	return flashes
}
