package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/questpath-backend/internal/http/response"
	"github.com/yungbote/questpath-backend/internal/requestdata"
	"github.com/yungbote/questpath-backend/internal/services"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"id": user.ID, "email": user.Email})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	ah.respondTokens(c, accessToken, refreshToken)
}

func (ah *AuthHandler) OAuthGoogle(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	ah.respondTokens(c, accessToken, refreshToken)
}

// Refresh accepts the refresh token from the httpOnly cookie or, for
// non-browser clients, the request body.
func (ah *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	accessToken, newRefreshToken, err := ah.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	ah.respondTokens(c, accessToken, newRefreshToken)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := ah.authService.Logout(c.Request.Context(), rd.UserID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.SetCookie(refreshCookieName, "", -1, "/", "", ah.secureCookie, true)
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AuthHandler) respondTokens(c *gin.Context, accessToken, refreshToken string) {
	maxAge := int(ah.authService.RefreshTTL().Seconds())
	c.SetCookie(refreshCookieName, refreshToken, maxAge, "/", "", ah.secureCookie, true)
	response.RespondOK(c, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}
