// Package handlers holds the gin HTTP layer. Handlers bind and validate
// request bodies, delegate to the services and translate service errors to
// status codes. Error bodies are always {"message": "..."}.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"heartlink-dating-app/internal/apperrors"
	"heartlink-dating-app/internal/chat"
	"heartlink-dating-app/internal/discovery"
	"heartlink-dating-app/internal/store"
	"heartlink-dating-app/internal/swipe"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// notblank rejects strings that are empty after trimming, so "   " cannot
// pass a required check.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

type Handler struct {
	store     store.Store
	discovery *discovery.Service
	swipes    *swipe.Engine
	chat      *chat.Service
	jwtSecret string
	jwtExpiry time.Duration
}

func New(st store.Store, disc *discovery.Service, eng *swipe.Engine, ch *chat.Service, jwtSecret string, jwtExpiry time.Duration) *Handler {
	return &Handler{
		store:     st,
		discovery: disc,
		swipes:    eng,
		chat:      ch,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// currentUserID reads the id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// respondError maps a service error to its status. Internal errors are
// logged and masked with a generic message.
func respondError(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("request failed")
		c.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
