package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domainuser "github.com/yungbote/cleanarch-backend/internal/domain/user"
	"github.com/yungbote/cleanarch-backend/internal/http/response"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthRouter(t *testing.T) (*gin.Engine, services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := services.NewTokenService(logger.Nop(), services.TokenConfig{SecretKey: testSecret})
	require.NoError(t, err)

	am := NewAuthMiddleware(logger.Nop(), tokens)
	r := gin.New()
	r.Use(am.Authenticate())
	r.GET("/public", func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.Actor(c.Request.Context()))
	})
	authed := r.Group("/", am.RequireAuth())
	authed.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.GetRequestData(c.Request.Context()).Username)
	})
	authed.GET("/admin", am.RequireRole(domainuser.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, tokens
}

func issue(t *testing.T, tokens services.TokenService, username string, roles ...string) string {
	t.Helper()
	u, err := domainuser.New(username, username+"@example.com", "hash", "Test User")
	require.NoError(t, err)
	for _, role := range roles {
		require.NoError(t, u.AddRole(role))
	}
	issued, err := tokens.Issue(u)
	require.NoError(t, err)
	return issued.AccessToken
}

func do(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := do(r, "/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var env response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "unauthorized", env.Code)

	rec = do(r, "/me", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAcceptsBearerAndQueryToken(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token := issue(t, tokens, "jdoe", domainuser.RoleUser)

	rec := do(r, "/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "jdoe", rec.Body.String())

	rec = do(r, "/me?token="+token, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateLeavesAnonymousRequestsAlone(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := do(r, "/public", "garbage")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, ctxutil.SystemActor, rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	r, tokens := newAuthRouter(t)

	rec := do(r, "/admin", issue(t, tokens, "jdoe", domainuser.RoleUser))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, "/admin", issue(t, tokens, "admin", domainuser.RoleAdmin, domainuser.RoleUser))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
