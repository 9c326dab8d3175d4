package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-member-portal/internal/interface/http"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
	"github.com/oksasatya/go-member-portal/internal/interface/web"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

type portal struct {
	engine *gin.Engine
	users  *memory.UserRepository
	store  *memory.SessionStore
}

func newPortal(t *testing.T, adminEnabled bool) *portal {
	t.Helper()
	return newPortalWith(t, adminEnabled, false)
}

func newPortalWith(t *testing.T, adminEnabled, exposeExpvar bool) *portal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	store := memory.NewSessionStore()
	logger := helpers.NewDiscardLogger()
	view, err := web.NewRenderer()
	require.NoError(t, err)

	mgr := application.NewSessionManager(store, helpers.NewSessionTokenSigner("test-secret"), time.Hour, logger)
	deps := Deps{
		Auth:         application.NewAuthService(users, logger, nil, nil),
		Admin:        application.NewAdminService(users, logger, nil),
		Sessions:     middleware.NewSessions(mgr, helpers.NewCookie("", false), logger),
		Pages:        handlers.NewPages(view, logger, adminEnabled),
		Checks:       map[string]handlers.Pinger{"memory": func(context.Context) error { return nil }},
		AdminEnabled: adminEnabled,
		ExposeExpvar: exposeExpvar,
	}

	engine := gin.New()
	InitModules(NewRegistry(engine), deps)
	return &portal{engine: engine, users: users, store: store}
}

func (p *portal) seedAdmin(t *testing.T) {
	t.Helper()
	hash, err := helpers.HashPassword("rootpw1")
	require.NoError(t, err)
	_, err = p.users.Insert(context.Background(), &entity.User{Email: "root@x.com", Name: "Root", PasswordHash: hash, Role: entity.RoleAdmin})
	require.NoError(t, err)
}

// browser keeps the session cookie between requests.
type browser struct {
	p      *portal
	cookie *http.Cookie
}

func (b *browser) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.p.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name != helpers.SessionCookieName {
			continue
		}
		if c.MaxAge < 0 {
			b.cookie = nil
		} else {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) form(path string, v url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, "application/x-www-form-urlencoded", v.Encode())
}

func (b *browser) json(path string, v any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(v)
	return b.do(http.MethodPost, path, "application/json", string(raw))
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, "", "")
}

func register(b *browser, email, name, pw string) *httptest.ResponseRecorder {
	return b.form("/registerUser", url.Values{"email": {email}, "name": {name}, "password": {pw}, "password2": {pw}})
}

func loginForm(b *browser, email, pw string) *httptest.ResponseRecorder {
	return b.form("/loginUser", url.Values{"email": {email}, "password": {pw}})
}

func TestEndToEndRegisterPromoteAdmin(t *testing.T) {
	p := newPortal(t, true)
	p.seedAdmin(t)

	ann := &browser{p: p}
	w := register(ann, "a@x.com", "Ann", "secret1")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/members", w.Header().Get("Location"))
	require.NotNil(t, ann.cookie)

	w = ann.get("/members")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ann")

	u, err := p.users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)

	w = ann.get("/admin")
	assert.Equal(t, http.StatusFound, w.Code)

	stranger := &browser{p: p}
	w = loginForm(stranger, "a@x.com", "wrong12")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email/password")
	assert.Nil(t, stranger.cookie)

	root := &browser{p: p}
	require.Equal(t, http.StatusFound, loginForm(root, "root@x.com", "rootpw1").Code)
	w = root.json("/changeUserType", map[string]string{"email": "a@x.com", "role": "admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Ann's snapshot still says user until she logs in again
	assert.Equal(t, http.StatusFound, ann.get("/admin").Code)

	require.Equal(t, http.StatusFound, loginForm(ann, "a@x.com", "secret1").Code)
	w = ann.get("/admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "root@x.com")
}

func TestRegisterErrors(t *testing.T) {
	p := newPortal(t, true)
	b := &browser{p: p}

	w := b.form("/registerUser", url.Values{"email": {"a@x.com"}, "name": {"Ann"}, "password": {"secret1"}, "password2": {"secret2"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password2")
	_, err := p.users.FindByEmail(context.Background(), "a@x.com")
	assert.Error(t, err)

	require.Equal(t, http.StatusFound, register(b, "a@x.com", "Ann", "secret1").Code)

	other := &browser{p: p}
	w = register(other, "a@x.com", "Ann", "secret1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, other.cookie)
}

func TestRegisterMultiBytePasswords(t *testing.T) {
	p := newPortal(t, true)

	tooLong := &browser{p: p}
	w := register(tooLong, "a@x.com", "Ann", strings.Repeat("😀", 20))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must not exceed 72 bytes")
	assert.Nil(t, tooLong.cookie)

	pw := strings.Repeat("😀", 18)
	first := &browser{p: p}
	require.Equal(t, http.StatusFound, register(first, "b@x.com", "Bea", pw).Code)

	again := &browser{p: p}
	w = loginForm(again, "b@x.com", pw)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.NotNil(t, again.cookie)
}

func TestLoginUnknownUser(t *testing.T) {
	b := &browser{p: newPortal(t, true)}
	w := b.json("/loginUser", map[string]string{"email": "nobody@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestGetUserNameAndLogout(t *testing.T) {
	p := newPortal(t, true)
	b := &browser{p: p}

	assert.Equal(t, http.StatusUnauthorized, b.json("/getUserName", nil).Code)

	require.Equal(t, http.StatusFound, register(b, "a@x.com", "Ann", "secret1").Code)
	w := b.json("/getUserName", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Ann"}`, w.Body.String())

	assert.Equal(t, http.StatusFound, b.get("/login").Code)

	w = b.do(http.MethodPost, "/logout", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Nil(t, b.cookie)
	assert.Zero(t, p.store.Len())

	assert.Equal(t, http.StatusFound, b.get("/members").Code)
}

func TestSelfDemotedAdminIsDenied(t *testing.T) {
	p := newPortal(t, true)
	p.seedAdmin(t)
	root := &browser{p: p}
	require.Equal(t, http.StatusFound, loginForm(root, "root@x.com", "rootpw1").Code)

	w := root.json("/changeUserType", map[string]string{"email": "root@x.com", "userType": "user"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusFound, root.get("/admin").Code)
	assert.Equal(t, http.StatusUnauthorized, root.json("/deleteUser", map[string]string{"email": "root@x.com"}).Code)
}

func TestAdminMutations(t *testing.T) {
	p := newPortal(t, true)
	p.seedAdmin(t)
	root := &browser{p: p}
	require.Equal(t, http.StatusFound, loginForm(root, "root@x.com", "rootpw1").Code)

	assert.Equal(t, http.StatusBadRequest, root.json("/changeUserType", map[string]string{"email": "a@x.com", "role": "owner"}).Code)
	assert.Equal(t, http.StatusOK, root.json("/deleteUser", map[string]string{"email": "ghost@x.com"}).Code)

	w := root.get("/admin/search?q=ann")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"users":[]`)

	member := &browser{p: p}
	require.Equal(t, http.StatusFound, register(member, "a@x.com", "Ann", "secret1").Code)
	w = member.json("/changeUserType", map[string]string{"email": "a@x.com", "role": "admin"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "root@x.com")
}

func TestAdminDisabled(t *testing.T) {
	p := newPortal(t, false)
	p.seedAdmin(t)
	root := &browser{p: p}
	require.Equal(t, http.StatusFound, loginForm(root, "root@x.com", "rootpw1").Code)

	assert.Equal(t, http.StatusNotFound, root.get("/admin").Code)
	assert.NotContains(t, root.get("/").Body.String(), `href="/admin"`)
}

func TestNotFoundAndHealth(t *testing.T) {
	b := &browser{p: newPortal(t, true)}

	w := b.get("/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")

	assert.Equal(t, http.StatusOK, b.get("/healthz").Code)
}

func TestDebugVarsOnlyWhenEnabled(t *testing.T) {
	b := &browser{p: newPortal(t, true)}
	assert.Equal(t, http.StatusNotFound, b.get("/debug/vars").Code)

	b = &browser{p: newPortalWith(t, true, true)}
	w := b.get("/debug/vars")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"auth"`)
}
