package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"songsync/internal/handlers/render"
	"songsync/internal/repositories"
	"songsync/internal/services"
)

// NewRouter wires the HTTP surface. The sync route runs body validation
// ahead of authorization, mirroring the middleware order the API has always
// had; delete and get skip the validator entirely.
func NewRouter(
	saveHandler *SaveHandler,
	authHandler *AuthHandler,
	validator *services.SongListValidator,
	identity services.IdentityService,
	saves repositories.SaveRepository,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	requireAuth := RequireAuth(identity, saves)

	api := router.Group("/api")
	{
		api.GET("/get-oauth2-url", authHandler.GetOAuth2URL)
		api.GET("/get-access-token", authHandler.GetAccessToken)
		api.GET("/refresh-access-token", authHandler.RefreshAccessToken)

		api.GET("/get-profile-data", saveHandler.GetProfileData)
		api.GET("/get-data", requireAuth, saveHandler.GetData)
		api.POST("/sync-data", ValidateSyncBody(validator), requireAuth, saveHandler.SyncData)
		api.DELETE("/delete-data", requireAuth, saveHandler.DeleteData)
	}

	router.NoRoute(func(c *gin.Context) {
		render.Error(c, http.StatusNotFound, MsgNotFound)
	})

	return router
}
