package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-cv-backend/config"
	"go-cv-backend/internal/delivery/http/middleware"
	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/internal/domain"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

func NewAuthHandler(public, protected, admin *gin.RouterGroup, loginLimit gin.HandlerFunc, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{authUC: authUC, config: cfg}

	public.POST("/register", loginLimit, handler.Register)
	public.GET("/confirm/:code", handler.Confirm)
	public.POST("/login", loginLimit, handler.Login)

	protected.POST("/logout", handler.Logout)
	protected.GET("/me", handler.Me)

	admin.GET("/users", handler.ListUsers)
}

// Register godoc
// @Summary      Register an account
// @Description  Creates a pending account and emails an activation link.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterInput  true  "Account details"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Compte créé, vérifiez votre email pour l'activer", user)
}

// Confirm godoc
// @Summary      Activate an account
// @Tags         auth
// @Produce      json
// @Param        code  path      string  true  "Activation code"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /confirm/{code} [get]
func (h *AuthHandler) Confirm(c *gin.Context) {
	if err := h.authUC.ConfirmAccount(c.Request.Context(), c.Param("code")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Compte activé", nil)
}

// Login godoc
// @Summary      Log in
// @Description  Returns a session token and sets it as the HttpOnly jwt cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginInput  true  "Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.authUC.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = int(h.config.JWTTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, result.Token, maxAge, "/", "", h.config.CookieSecure, true)

	response.Success(c, http.StatusOK, "Connexion réussie", result)
}

// Logout godoc
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.config.CookieSecure, true)
	response.Success(c, http.StatusOK, "Déconnexion réussie", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), middleware.ActorFrom(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Utilisateur courant", user)
}

// ListUsers godoc
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Param        search  query     string  false  "Name or email fragment"
// @Success      200     {object}  response.Response{data=[]domain.User}
// @Failure      403     {object}  response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authUC.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Utilisateurs", users)
}
