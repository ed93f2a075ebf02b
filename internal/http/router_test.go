package http_test

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainuser "github.com/yungbote/cleanarch-backend/internal/domain/user"
	"github.com/yungbote/cleanarch-backend/internal/features/auth"
	"github.com/yungbote/cleanarch-backend/internal/features/featuretest"
	"github.com/yungbote/cleanarch-backend/internal/features/projects"
	apphttp "github.com/yungbote/cleanarch-backend/internal/http"
	httpH "github.com/yungbote/cleanarch-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cleanarch-backend/internal/http/middleware"
	"github.com/yungbote/cleanarch-backend/internal/http/response"
)

type testAPI struct {
	engine *gin.Engine
	h      *featuretest.Harness
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := featuretest.New(t)
	auth.Register(h.Mediator, h.Deps)
	projects.Register(h.Mediator, h.Deps)

	engine := apphttp.NewRouter(apphttp.RouterConfig{
		Log:            h.Deps.Log,
		AuthMiddleware: httpMW.NewAuthMiddleware(h.Deps.Log, h.Deps.Tokens),
		AuthHandler:    httpH.NewAuthHandler(h.Mediator),
		ProjectHandler: httpH.NewProjectHandler(h.Mediator),
		HealthHandler:  httpH.NewHealthHandler(h.DB),
	})
	return &testAPI{engine: engine, h: h}
}

func (api *testAPI) token(t *testing.T, roles ...string) string {
	t.Helper()
	u, err := domainuser.New(featuretest.Unique("user"), uuid.NewString()[:8]+"@example.com", "hash", "Test User")
	require.NoError(t, err)
	for _, r := range roles {
		require.NoError(t, u.AddRole(r))
	}
	issued, err := api.h.Deps.Tokens.Issue(u)
	require.NoError(t, err)
	return issued.AccessToken
}

func (api *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.engine.ServeHTTP(rec, req)
	return rec
}

func projectBody(code string) map[string]any {
	return map[string]any{
		"code":           code,
		"name":           "Customer Portal",
		"description":    "Self-service portal",
		"startDate":      "2024-01-15T00:00:00Z",
		"plannedEndDate": "2024-12-31T00:00:00Z",
		"projectManager": "Jane Doe",
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorEnvelope {
	t.Helper()
	var env response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, nethttp.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCreateProjectEndToEnd(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, domainuser.RoleUser)
	code := featuretest.Unique("PRJ")

	rec := api.do(t, nethttp.MethodPost, "/api/projects", token, projectBody(code))
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEqual(t, uuid.Nil, out.ID)

	rec = api.do(t, nethttp.MethodGet, "/api/projects/"+out.ID.String(), "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var got projects.ProjectDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, code, got.Code)

	rec = api.do(t, nethttp.MethodGet, "/api/projects/"+out.ID.String()+"/code", "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":"`+code+`"}`, rec.Body.String())

	rec = api.do(t, nethttp.MethodPost, "/api/projects", token, projectBody(code))
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "conflict", env.Code)
	assert.Contains(t, env.Error, code)
}

func TestCreateProjectRequiresAuthentication(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, nethttp.MethodPost, "/api/projects", "", projectBody(featuretest.Unique("PRJ")))
	require.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeEnvelope(t, rec).Code)
}

func TestCreateProjectValidationEnvelope(t *testing.T) {
	api := newTestAPI(t)
	body := projectBody(featuretest.Unique("PRJ"))
	body["name"] = ""
	body["plannedEndDate"] = "2023-01-01T00:00:00Z"

	rec := api.do(t, nethttp.MethodPost, "/api/projects", api.token(t, domainuser.RoleUser), body)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "validation", env.Code)
	assert.NotEmpty(t, env.Errors)
}

func TestGetProjectUnknownAndMalformedID(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, nethttp.MethodGet, "/api/projects/"+uuid.NewString(), "", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeEnvelope(t, rec).Code)

	rec = api.do(t, nethttp.MethodGet, "/api/projects/not-a-guid", "", nil)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeEnvelope(t, rec).Code)
}

func TestDeleteProjectRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.token(t, domainuser.RoleUser)

	rec := api.do(t, nethttp.MethodPost, "/api/projects", userToken, projectBody(featuretest.Unique("PRJ")))
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	rec = api.do(t, nethttp.MethodDelete, "/api/projects/"+out.ID.String(), userToken, nil)
	require.Equal(t, nethttp.StatusForbidden, rec.Code)

	adminToken := api.token(t, domainuser.RoleAdmin, domainuser.RoleUser)
	rec = api.do(t, nethttp.MethodDelete, "/api/projects/"+out.ID.String(), adminToken, nil)
	require.Equal(t, nethttp.StatusNoContent, rec.Code, rec.Body.String())

	rec = api.do(t, nethttp.MethodGet, "/api/projects/"+out.ID.String(), "", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}
