package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"songsync/internal/handlers/render"
	"songsync/internal/services"
)

// tokenExpirySlack is subtracted from the provider expiry so clients refresh
// slightly before the token actually dies.
const tokenExpirySlack = 5 * time.Second

// TokenResponse is what the OAuth2 endpoints hand back to the client.
// ExpiresAt is Unix milliseconds.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// AuthHandler serves the OAuth2 code-grant glue endpoints.
type AuthHandler struct {
	oauth services.OAuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(oauth services.OAuthService) *AuthHandler {
	return &AuthHandler{oauth: oauth}
}

// GetOAuth2URL handles GET /api/get-oauth2-url, redirecting to the provider
// authorize page with a signed state parameter.
func (h *AuthHandler) GetOAuth2URL(c *gin.Context) {
	url, err := h.oauth.AuthCodeURL()
	if err != nil {
		slog.Error("Failed to build authorize URL", "error", err)
		render.ErrorWithDetail(c, http.StatusInternalServerError, MsgUnknownError, err.Error())
		return
	}

	c.Redirect(http.StatusFound, url)
}

// GetAccessToken handles GET /api/get-access-token
func (h *AuthHandler) GetAccessToken(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		render.Error(c, http.StatusBadRequest, MsgInvalidQuery)
		return
	}

	// State is checked when the client round-tripped one; older clients that
	// never received a state still get their code exchanged.
	if state := c.Query("state"); state != "" {
		if err := h.oauth.VerifyState(state); err != nil {
			render.ErrorWithDetail(c, http.StatusUnauthorized, MsgFailedToAuthorize, err.Error())
			return
		}
	}

	token, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		render.ErrorWithDetail(c, http.StatusUnauthorized, MsgFailedToAuthorize, err.Error())
		return
	}

	h.respondToken(c, token)
}

// RefreshAccessToken handles GET /api/refresh-access-token
func (h *AuthHandler) RefreshAccessToken(c *gin.Context) {
	refreshToken := c.Query("refresh_token")
	if refreshToken == "" {
		render.Error(c, http.StatusBadRequest, MsgInvalidQuery)
		return
	}

	token, err := h.oauth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		render.ErrorWithDetail(c, http.StatusUnauthorized, MsgFailedToAuthorize, err.Error())
		return
	}

	h.respondToken(c, token)
}

func (h *AuthHandler) respondToken(c *gin.Context, token *oauth2.Token) {
	if token.AccessToken == "" || token.RefreshToken == "" {
		render.Error(c, http.StatusUnauthorized, MsgFailedToAuthorize)
		return
	}

	render.JSON(c, TokenResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry.Add(-tokenExpirySlack).UnixMilli(),
	})
}
