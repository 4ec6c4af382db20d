package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/crudnote/internal/backend"
	"github.com/jon4hz/crudnote/internal/config"
	"github.com/jon4hz/crudnote/internal/controllers"
	"github.com/jon4hz/crudnote/internal/models"
	"github.com/jon4hz/crudnote/internal/preference"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/jon4hz/crudnote/internal/static"
	"github.com/jon4hz/crudnote/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type APITestSuite struct {
	suite.Suite
	backend *httptest.Server
	server  *httptest.Server
	client  *http.Client
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	users := []models.User{{
		ID:       "1",
		FullName: "Alice Liddell",
		Email:    "alice@example.com",
		Username: "alice",
		Password: "secret",
	}}
	s.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(users)
	}))

	cfg := &config.Config{
		Listen:      "127.0.0.1:0",
		SessionKey:  "test-secret",
		ThemeMaxAge: 3600,
		Backend:     &config.BackendConfig{URL: s.backend.URL, Timeout: 5 * time.Second},
		Gravatar:    &config.GravatarConfig{},
	}

	r := router.New(router.DefaultTable(), views.NewFSLoader(static.ViewsFS))
	controllers.Register(r, backend.New(cfg.Backend), cfg.Gravatar)

	srv, err := New(cfg, r, true)
	s.Require().NoError(err)
	s.server = httptest.NewServer(srv.Handler())

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	s.client = &http.Client{Jar: jar}
}

func (s *APITestSuite) TearDownTest() {
	s.server.Close()
	s.backend.Close()
}

// do performs a request, following redirects, and returns the final response and body.
func (s *APITestSuite) do(req *http.Request) (*http.Response, string) {
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, string(body)
}

func (s *APITestSuite) get(path string) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+path, nil)
	s.Require().NoError(err)
	return s.do(req)
}

func (s *APITestSuite) post(path string, form url.Values) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, strings.NewReader(form.Encode()))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *APITestSuite) login() {
	resp, _ := s.post("/login", url.Values{
		"target":               {"loginForm"},
		"event":                {"submit"},
		"loginEmailOrUsername": {"alice"},
		"loginPassword":        {"secret"},
	})
	s.Require().Equal("/home", resp.Request.URL.Path)
}

func (s *APITestSuite) TestHealth() {
	resp, body := s.get("/healthz")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.JSONEq(`{"status":"ok"}`, body)
}

func (s *APITestSuite) TestStaticAssets() {
	resp, body := s.get("/static/css/app.css")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "dark-theme")
}

func (s *APITestSuite) TestLanding() {
	resp, body := s.get("/")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `<div id="app">`)
	s.Contains(body, `id="landingTitle"`)
}

func (s *APITestSuite) TestUnknownPathRedirectsToRoot() {
	resp, body := s.get("/does/not/exist")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("/", resp.Request.URL.Path)
	s.Contains(body, `id="landingTitle"`)
}

func (s *APITestSuite) TestProtectedViewRedirectsToLogin() {
	resp, body := s.get("/home")
	s.Equal("/login", resp.Request.URL.Path)
	s.Contains(body, `id="loginForm"`)
	s.NotContains(body, "welcomeMessage")
}

func (s *APITestSuite) TestLoginFlow() {
	resp, body := s.post("/login", url.Values{
		"target":               {"loginForm"},
		"event":                {"submit"},
		"loginEmailOrUsername": {"alice"},
		"loginPassword":        {"secret"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("/home", resp.Request.URL.Path)
	s.Contains(body, "Welcome, Alice Liddell!")
	s.Contains(body, controllers.NoticeSignedIn)

	// the notice is shown once
	_, body = s.get("/home")
	s.Contains(body, "Welcome, Alice Liddell!")
	s.NotContains(body, controllers.NoticeSignedIn)

	resp, body = s.post("/home", url.Values{"target": {"signOutBtn"}, "event": {"click"}})
	s.Equal("/login", resp.Request.URL.Path)
	s.Contains(body, controllers.NoticeSignedOut)

	resp, _ = s.get("/home")
	s.Equal("/login", resp.Request.URL.Path)
}

func (s *APITestSuite) TestLoginMismatch() {
	resp, body := s.post("/login", url.Values{
		"target":               {"loginForm"},
		"event":                {"submit"},
		"loginEmailOrUsername": {"alice"},
		"loginPassword":        {"nope"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("/login", resp.Request.URL.Path)
	s.Contains(body, "Incorrect credentials")

	resp, _ = s.get("/home")
	s.Equal("/login", resp.Request.URL.Path)
}

func (s *APITestSuite) TestThemeToggle() {
	s.login()

	_, body := s.post("/home", url.Values{"target": {"themeToggleBtn"}, "event": {"click"}})
	s.Contains(body, `<body class="dark-theme">`)
	s.Contains(body, "fa-moon")

	u, err := url.Parse(s.server.URL)
	s.Require().NoError(err)
	var theme string
	for _, c := range s.client.Jar.Cookies(u) {
		if c.Name == preference.Key {
			theme = c.Value
		}
	}
	s.Equal(string(preference.Dark), theme)

	// the preference outlives the session
	_, body = s.get("/")
	s.Contains(body, `<body class="dark-theme">`)
}

func (s *APITestSuite) TestPartial() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/home", nil)
	s.Require().NoError(err)
	req.Header.Set(PartialHeader, "1")

	resp, body := s.do(req)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("/home", resp.Request.URL.Path, "partial requests are not redirected")
	s.Equal("/login", resp.Header.Get(PathHeader))
	s.Contains(body, `id="loginForm"`)
	s.NotContains(body, "<html")

	req, err = http.NewRequest(http.MethodPost, s.server.URL+"/login", strings.NewReader(url.Values{
		"target":               {"loginForm"},
		"event":                {"submit"},
		"loginEmailOrUsername": {"alice"},
		"loginPassword":        {"secret"},
	}.Encode()))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(PartialHeader, "1")

	resp, body = s.do(req)
	s.Equal("/home", resp.Header.Get(PathHeader))
	s.Contains(body, "Welcome, Alice Liddell!")

	var notices []string
	s.Require().NoError(json.Unmarshal([]byte(resp.Header.Get(NoticeHeader)), &notices))
	s.Equal([]string{controllers.NoticeSignedIn}, notices)
}

func (s *APITestSuite) TestMethodNotAllowed() {
	req, err := http.NewRequest(http.MethodDelete, s.server.URL+"/home", nil)
	s.Require().NoError(err)
	resp, _ := s.do(req)
	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, router.New(router.DefaultTable(), nil), false)
	assert.Error(t, err)
}
