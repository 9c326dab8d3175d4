package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
	"github.com/oksasatya/go-member-portal/internal/interface/web"
)

type MemberHandler struct {
	*Pages
}

func NewMemberHandler(pages *Pages) *MemberHandler {
	return &MemberHandler{Pages: pages}
}

// Home greets the visitor by name when signed in.
func (h *MemberHandler) Home(c *gin.Context) {
	vm := web.HomeView{}
	if id := middleware.CurrentIdentity(c); id != nil {
		vm.Name = id.Name
	}
	h.render(c, http.StatusOK, web.PageHome, "Home", vm)
}

func (h *MemberHandler) Members(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	h.render(c, http.StatusOK, web.PageMembers, "Members", web.MembersView{Name: id.Name, Image: web.RandomImage()})
}

// GetUserName returns the name held by the session as {"name": ...}.
func (h *MemberHandler) GetUserName(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": middleware.CurrentIdentity(c).Name})
}

// NotFound answers unmatched routes.
func (h *MemberHandler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, web.PageError, "Not found",
		web.ErrorView{Message: "Page not found", Back: "/", BackLabel: "Go back"})
}
