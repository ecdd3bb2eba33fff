package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/devconnector-api/internal/application"
	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	"github.com/oksasatya/devconnector-api/internal/infrastructure/memory"
	"github.com/oksasatya/devconnector-api/internal/interface/middleware"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
	"github.com/oksasatya/devconnector-api/pkg/response"
	"github.com/oksasatya/devconnector-api/pkg/validation"
)

type testServer struct {
	engine *gin.Engine
	jwt    *helpers.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger, _ := test.NewNullLogger()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	profiles := memory.NewProfileRepository(store)
	jwt := helpers.NewJWTManager("handler-secret", time.Hour)

	userSvc := application.NewUserService(users, jwt, helpers.NewPasswordHasher(bcrypt.MinCost), logger, nil)
	profileSvc := application.NewProfileService(profiles, users, nil, nil, nil, logger)

	uh := NewUserHandler(userSvc, logger)
	ah := NewAuthHandler(userSvc, logger)
	ph := NewProfileHandler(profileSvc, logger)

	e := gin.New()
	e.Use(middleware.RequestIDMiddleware())
	api := e.Group("/api")
	api.POST("/users", uh.Register)
	api.POST("/auth", ah.Login)
	api.GET("/profile", ph.List)
	api.GET("/profile/user/:user_id", ph.ByUser)
	api.GET("/profile/github/:username", ph.Github)
	api.GET("/profile/search", ph.Search)

	auth := api.Group("/", middleware.Auth(jwt, "", logger))
	auth.GET("/auth", ah.Me)
	auth.GET("/profile/me", ph.Me)
	auth.POST("/profile", ph.Upsert)
	auth.DELETE("/profile", ph.Delete)
	auth.PUT("/profile/experience", ph.AddExperience)
	auth.DELETE("/profile/experience/:exp_id", ph.RemoveExperience)
	auth.PUT("/profile/education", ph.AddEducation)
	auth.DELETE("/profile/education/:edu_id", ph.RemoveEducation)

	return &testServer{engine: e, jwt: jwt}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/users", "", gin.H{"name": "Alice", "email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/users", "", gin.H{"email": "bad", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeErrors(t, w)
	assert.NotEmpty(t, body.RequestID)
	assert.ElementsMatch(t, []response.ErrorItem{
		{Msg: "Name is required", Param: "name"},
		{Msg: "Please include a valid email", Param: "email"},
		{Msg: "Please enter a password with 6 or more characters", Param: "password"},
	}, body.Errors)
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "a@x.com")
	w := s.do(http.MethodPost, "/api/users", "", gin.H{"name": "B", "email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeErrors(t, w).Errors[0].Msg)
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	tok := s.register(t, "a@x.com")

	w := s.do(http.MethodPost, "/api/auth", "", gin.H{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)

	w = s.do(http.MethodPost, "/api/auth", "", gin.H{"email": "a@x.com", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", decodeErrors(t, w).Errors[0].Msg)

	w = s.do(http.MethodGet, "/api/auth", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var u map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "a@x.com", u["email"])
	assert.NotContains(t, u, "password")
	assert.Equal(t, helpers.GravatarURL("a@x.com"), u["avatar"])

	w = s.do(http.MethodGet, "/api/auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_UpsertRequiresStatusAndSkills(t *testing.T) {
	s := newTestServer(t)
	tok := s.register(t, "a@x.com")

	w := s.do(http.MethodPost, "/api/profile", tok, gin.H{"company": "Acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.ElementsMatch(t, []response.ErrorItem{
		{Msg: "Status is required", Param: "status"},
		{Msg: "Skills is required", Param: "skills"},
	}, decodeErrors(t, w).Errors)
}

func TestProfile_UpsertAndRead(t *testing.T) {
	s := newTestServer(t)
	tok := s.register(t, "a@x.com")

	w := s.do(http.MethodGet, "/api/profile/me", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/profile", tok, gin.H{"status": "Developer", "skills": " go, ,sql ", "twitter": "@a"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p entity.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, "@a", p.Social.Twitter)
	require.NotNil(t, p.User)
	assert.Equal(t, "Alice", p.User.Name)

	w = s.do(http.MethodGet, "/api/profile/user/"+p.User.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/profile/user/not-an-id", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Profile not found", decodeErrors(t, w).Errors[0].Msg)

	w = s.do(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var all []entity.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}

func TestProfile_ExperienceAndEducation(t *testing.T) {
	s := newTestServer(t)
	tok := s.register(t, "a@x.com")

	w := s.do(http.MethodPut, "/api/profile/experience", tok, gin.H{"title": "Dev", "company": "Acme", "from": "2020-01-01"})
	assert.Equal(t, http.StatusNotFound, w.Code, "no profile yet")

	s.do(http.MethodPost, "/api/profile", tok, gin.H{"status": "Developer", "skills": "go"})

	w = s.do(http.MethodPut, "/api/profile/experience", tok, gin.H{"title": "Dev", "company": "Acme", "from": "someday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "From date is required", decodeErrors(t, w).Errors[0].Msg)

	w = s.do(http.MethodPut, "/api/profile/experience", tok, gin.H{"title": "Dev", "company": "Acme", "from": "2020-01-01", "to": "2021-06-30T00:00:00Z"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p entity.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.Len(t, p.Experience, 1)
	require.NotNil(t, p.Experience[0].To)
	expID := p.Experience[0].ID

	w = s.do(http.MethodDelete, "/api/profile/experience/unknown", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Len(t, p.Experience, 1, "unknown id leaves the list alone")

	w = s.do(http.MethodDelete, "/api/profile/experience/"+expID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Empty(t, p.Experience)

	w = s.do(http.MethodPut, "/api/profile/education", tok, gin.H{"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "2010-09-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.Len(t, p.Education, 1)

	w = s.do(http.MethodDelete, "/api/profile/education/"+p.Education[0].ID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Empty(t, p.Education)
}

func TestProfile_DeleteAccount(t *testing.T) {
	s := newTestServer(t)
	tok := s.register(t, "a@x.com")
	s.do(http.MethodPost, "/api/profile", tok, gin.H{"status": "Developer", "skills": "go"})

	w := s.do(http.MethodDelete, "/api/profile", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"User deleted"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth", "", gin.H{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfile_GithubAndSearchWithoutBackends(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/profile/github/octocat", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No Github profile found", decodeErrors(t, w).Errors[0].Msg)

	w = s.do(http.MethodGet, "/api/profile/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/profile/search?q=go", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
