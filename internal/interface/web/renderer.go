package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var files embed.FS

// Page names.
const (
	PageHome     = "home"
	PageLogin    = "login"
	PageRegister = "register"
	PageMembers  = "members"
	PageAdmin    = "admin"
	PageError    = "error"
)

var pageNames = []string{PageHome, PageLogin, PageRegister, PageMembers, PageAdmin, PageError}

// Renderer executes the embedded page templates. Each page is parsed
// together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %q: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page with the given frame. The page is rendered into a
// buffer first so a template failure still yields a clean 500.
func (r *Renderer) Render(c *gin.Context, status int, page string, frame Frame) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", frame); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return err
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
	return nil
}
