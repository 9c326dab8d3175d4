package web

import (
	"fmt"
	"math/rand"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
)

// Frame is the page chrome shared by every page. Page holds the page's own
// view-model.
type Frame struct {
	Title     string
	LoggedIn  bool
	ShowAdmin bool
	Page      any
}

// HomeView is empty for anonymous visitors.
type HomeView struct {
	Name string
}

type MembersView struct {
	Name  string
	Image string
}

type AdminView struct {
	Name  string
	Users []UserRow
}

type UserRow struct {
	Email   string
	Name    string
	Role    entity.Role
	IsAdmin bool
}

type ErrorView struct {
	Message   string
	Back      string
	BackLabel string
}

// MemberImageCount is the number of images under /static/images.
const MemberImageCount = 3

// RandomImage picks one of the member images.
func RandomImage() string {
	return fmt.Sprintf("/static/images/%d.svg", rand.Intn(MemberImageCount))
}

func NewAdminView(admin *entity.User, users []*entity.User) AdminView {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{Email: u.Email, Name: u.Name, Role: u.Role, IsAdmin: u.IsAdmin()})
	}
	return AdminView{Name: admin.Name, Users: rows}
}

// SearchResult is the JSON shape of /admin/search.
type SearchResult struct {
	Query string                `json:"query"`
	Users []application.UserHit `json:"users"`
}
