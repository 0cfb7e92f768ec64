package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"songsync/internal/handlers/render"
	"songsync/internal/repositories"
	"songsync/internal/services"
)

// Context keys set by the middleware chain for downstream handlers.
const (
	ctxUserID = "userID"
	ctxSave   = "save"
	ctxSongs  = "validatedSongs"
)

// RequireAuth resolves the bearer credential to a user identity and loads
// that user's save onto the request context. A missing header short-circuits
// before any external call.
func RequireAuth(identity services.IdentityService, saves repositories.SaveRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			render.Error(c, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		userID, err := identity.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthorized) {
				slog.Warn("Identity lookup failed", "error", err)
			}
			render.Error(c, http.StatusUnauthorized, MsgFailedToAuthorize)
			return
		}

		save, err := saves.FindByUser(c.Request.Context(), userID)
		if err != nil {
			slog.Error("Failed to load save", "user", userID, "error", err)
			render.ErrorWithDetail(c, http.StatusInternalServerError, MsgUnknownError, err.Error())
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxSave, save)
		c.Next()
	}
}

// ValidateSyncBody parses and validates the submitted song list before the
// authorization stage, so a malformed body fails fast without spending an
// identity-provider round trip. Validation failures are terminal for the
// request.
func ValidateSyncBody(validator *services.SongListValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			render.Error(c, http.StatusBadRequest, MsgInvalidBody)
			return
		}

		songs, err := validator.Validate(c.Request.Context(), body)
		if err != nil {
			if errors.Is(err, services.ErrMalformedBody) {
				render.Error(c, http.StatusBadRequest, MsgInvalidBody)
				return
			}
			// Catalog unavailability or any other surprise during validation
			// surfaces as a diagnostic 500, never a raw fault.
			slog.Error("Song list validation failed", "error", err)
			render.ErrorWithDetail(c, http.StatusInternalServerError, MsgUnknownError, err.Error())
			return
		}

		c.Set(ctxSongs, songs)
		c.Next()
	}
}
