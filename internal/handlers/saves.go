package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"songsync/internal/handlers/render"
	"songsync/internal/models"
	"songsync/internal/repositories"
)

// SaveHandler serves the save read/sync/delete endpoints.
type SaveHandler struct {
	saves repositories.SaveRepository
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(saves repositories.SaveRepository) *SaveHandler {
	return &SaveHandler{saves: saves}
}

// GetProfileData handles GET /api/get-profile-data. Public: anyone may read
// a save by numeric user id.
func (h *SaveHandler) GetProfileData(c *gin.Context) {
	id := c.Query("id")
	if !models.IsSnowflake(id) {
		render.Error(c, http.StatusBadRequest, MsgInvalidQuery)
		return
	}

	save, err := h.saves.FindByUser(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to load profile save", "user", id, "error", err)
		render.ErrorWithDetail(c, http.StatusInternalServerError, MsgUnknownError, err.Error())
		return
	}

	render.JSON(c, save)
}

// GetData handles GET /api/get-data, returning the save RequireAuth already
// resolved.
func (h *SaveHandler) GetData(c *gin.Context) {
	save := c.MustGet(ctxSave).(*models.Save)
	render.JSON(c, save)
}

// SyncData handles POST /api/sync-data. The validated song list replaces the
// resolved save wholesale; an all-empty list deletes the row instead of
// persisting a no-op one.
func (h *SaveHandler) SyncData(c *gin.Context) {
	save := c.MustGet(ctxSave).(*models.Save)
	save.Songs = c.MustGet(ctxSongs).([]*models.SongRef)

	if save.IsEmpty() {
		if err := h.saves.Delete(c.Request.Context(), save.User); err != nil {
			slog.Error("Failed to delete save on empty sync", "user", save.User, "error", err)
			render.Error(c, http.StatusInternalServerError, MsgFailedToSave)
			return
		}
		render.JSON(c, save)
		return
	}

	if err := h.saves.Write(c.Request.Context(), save.User, save.Songs); err != nil {
		slog.Error("Failed to write save", "user", save.User, "error", err)
		render.Error(c, http.StatusInternalServerError, MsgFailedToSave)
		return
	}

	render.JSON(c, save)
}

// DeleteData handles DELETE /api/delete-data
func (h *SaveHandler) DeleteData(c *gin.Context) {
	save := c.MustGet(ctxSave).(*models.Save)

	if err := h.saves.Delete(c.Request.Context(), save.User); err != nil {
		slog.Error("Failed to delete save", "user", save.User, "error", err)
		render.Error(c, http.StatusInternalServerError, MsgFailedToDelete)
		return
	}

	render.JSON(c, true)
}
