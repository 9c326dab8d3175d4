package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
	"github.com/oksasatya/go-member-portal/internal/interface/web"
	"github.com/oksasatya/go-member-portal/pkg/response"
)

// AdminHandler serves the admin page and mutations. Routes are expected to be
// behind middleware.RequireStoredAdmin.
type AdminHandler struct {
	*Pages
	Svc *application.AdminService
}

func NewAdminHandler(pages *Pages, svc *application.AdminService) *AdminHandler {
	return &AdminHandler{Pages: pages, Svc: svc}
}

func (h *AdminHandler) Page(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.internalError(c, "list users failed", err)
		return
	}
	h.render(c, http.StatusOK, web.PageAdmin, "Admin", web.NewAdminView(middleware.AdminUser(c), users))
}

func (h *AdminHandler) ChangeUserType(c *gin.Context) {
	var in application.RoleChangeInput
	if err := c.ShouldBind(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	if err := h.Svc.ChangeRole(c.Request.Context(), in); err != nil {
		h.apiFail(c, err, "change role failed")
		return
	}
	in.Normalize()
	response.Success(c, http.StatusOK, gin.H{"email": in.Email, "role": in.Role}, "role updated", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	var in application.DeleteUserInput
	if err := c.ShouldBind(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), in); err != nil {
		h.apiFail(c, err, "delete user failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": in.Email}, "user deleted", nil)
}

// Search queries the users index: GET /admin/search?q=...&size=...
func (h *AdminHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.log(c).WithError(err).Error("search users failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, web.SearchResult{Query: q, Users: hits}, "ok", nil)
}

func (h *AdminHandler) apiFail(c *gin.Context, err error, logMsg string) {
	if msg, ok := clientError(err); ok {
		response.Error[any](c, http.StatusBadRequest, msg, nil)
		return
	}
	h.log(c).WithError(err).Error(logMsg)
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}
