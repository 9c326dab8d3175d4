package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
	"github.com/oksasatya/go-member-portal/internal/interface/web"
)

type AuthHandler struct {
	*Pages
	Svc      *application.AuthService
	Sessions *middleware.Sessions
}

func NewAuthHandler(pages *Pages, svc *application.AuthService, sessions *middleware.Sessions) *AuthHandler {
	return &AuthHandler{Pages: pages, Svc: svc, Sessions: sessions}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, web.PageLogin, "Log in", nil)
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, web.PageRegister, "Sign up", nil)
}

func (h *AuthHandler) LoginUser(c *gin.Context) {
	var in application.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		h.failPage(c, http.StatusBadRequest, "invalid payload", "/login")
		return
	}
	u, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "login failed", "/login")
		return
	}
	if !h.signIn(c, u) {
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var in application.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		h.failPage(c, http.StatusBadRequest, "invalid payload", "/register")
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "register failed", "/register")
		return
	}
	if !h.signIn(c, u) {
		return
	}
	c.Redirect(http.StatusFound, "/members")
}

// Logout destroys the session and clears the cookie. Served for both GET and
// POST.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.Sessions.Manager.Destroy(c.Request.Context(), sess); err != nil {
		h.log(c).WithError(err).Error("destroy session failed")
		h.render(c, http.StatusInternalServerError, web.PageError, "Error",
			web.ErrorView{Message: "Error logging out", Back: "/", BackLabel: "Go back"})
		return
	}
	h.Sessions.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) signIn(c *gin.Context, u *entity.User) bool {
	sess := middleware.CurrentSession(c)
	if err := h.Sessions.Manager.Authenticate(c.Request.Context(), sess, u.Identity()); err != nil {
		h.internalError(c, "authenticate session failed", err)
		return false
	}
	if err := h.Sessions.Commit(c, sess); err != nil {
		h.internalError(c, "sign session cookie failed", err)
		return false
	}
	return true
}

func (h *AuthHandler) fail(c *gin.Context, err error, logMsg, back string) {
	if msg, ok := clientError(err); ok {
		h.failPage(c, http.StatusBadRequest, msg, back)
		return
	}
	h.internalError(c, logMsg, err)
}
