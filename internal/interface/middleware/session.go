package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

const sessionKey = "session"

// Sessions binds the server-side session to the request cookie.
type Sessions struct {
	Manager *application.SessionManager
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewSessions(mgr *application.SessionManager, cookies *helpers.Manager, logger *logrus.Logger) *Sessions {
	return &Sessions{Manager: mgr, Cookies: cookies, Logger: logger}
}

// Handle loads the session for every request. Authenticated sessions have
// their expiry slid forward and the cookie refreshed before the handler
// runs; a cookie that no longer resolves to a session is cleared.
func (s *Sessions) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := s.Cookies.Session(c)

		sess, err := s.Manager.Load(ctx, token)
		if err != nil {
			s.fail(c, "load session failed", err)
			return
		}
		if sess.Authenticated() {
			if err := s.Manager.Touch(ctx, sess); err != nil {
				s.fail(c, "refresh session failed", err)
				return
			}
		}
		if sess.Authenticated() {
			if err := s.Commit(c, sess); err != nil {
				s.fail(c, "sign session cookie failed", err)
				return
			}
		} else if token != "" {
			s.Cookies.Clear(c)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// Commit writes the cookie for sess with its current expiry.
func (s *Sessions) Commit(c *gin.Context, sess *entity.Session) error {
	token, err := s.Manager.Token(sess)
	if err != nil {
		return err
	}
	s.Cookies.SetSession(c, token, sess.ExpiresAt)
	return nil
}

func (s *Sessions) fail(c *gin.Context, msg string, err error) {
	if s.Logger != nil {
		helpers.RequestLogger(s.Logger, c).WithError(err).Error(msg)
	}
	c.String(http.StatusInternalServerError, "Internal server error")
	c.Abort()
}

// CurrentSession returns the session loaded by Sessions.Handle. Outside that
// middleware it returns an anonymous session.
func CurrentSession(c *gin.Context) *entity.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*entity.Session); ok && sess != nil {
			return sess
		}
	}
	sess := &entity.Session{}
	c.Set(sessionKey, sess)
	return sess
}

// CurrentIdentity returns the identity snapshot of the current session, or
// nil when anonymous.
func CurrentIdentity(c *gin.Context) *entity.Identity {
	return CurrentSession(c).Identity
}
