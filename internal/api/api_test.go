package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"asanaflow/yoga-app/internal/catalog"
	"asanaflow/yoga-app/internal/domain"
	"asanaflow/yoga-app/internal/generator"
	"asanaflow/yoga-app/internal/repository/file"
	"asanaflow/yoga-app/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]domain.PoseRecord{
		{ID: "cat-cow", EnglishName: "Cat-Cow", Difficulty: domain.DifficultyBeginner, Type: domain.PoseTypeWarmUp, Category: domain.CategoryStretching, BaseDurationSec: 60, Targets: []string{"spine"}},
		{ID: "warrior-2", EnglishName: "Warrior II", SanskritName: "Virabhadrasana II", Difficulty: domain.DifficultyBeginner, Type: domain.PoseTypeStanding, Category: domain.CategoryStrengthening, BaseDurationSec: 60, Targets: []string{"legs"}},
		{ID: "forward-fold", EnglishName: "Forward Fold", Difficulty: domain.DifficultyBeginner, Type: domain.PoseTypeForwardFold, Category: domain.CategoryStretching, BaseDurationSec: 90, Targets: []string{"hamstrings"}},
		{ID: "legs-up-the-wall", EnglishName: "Legs Up the Wall", Difficulty: domain.DifficultyBeginner, Type: domain.PoseTypeCoolDown, Category: domain.CategoryRelaxation, BaseDurationSec: 180, Targets: []string{"legs"}},
		{ID: "savasana", EnglishName: "Corpse Pose", Difficulty: domain.DifficultyBeginner, Type: domain.PoseTypeCoolDown, Category: domain.CategoryRelaxation, BaseDurationSec: 300, Targets: []string{"full body"}},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

// newTestRouter wires the full API over the file session store with
// authentication disabled.
func newTestRouter(t *testing.T, cat *catalog.Catalog) *gin.Engine {
	t.Helper()
	return newTestRouterAuth(t, cat, service.NewAuthService("", "", 0), "")
}

func newTestRouterAuth(t *testing.T, cat *catalog.Catalog, authService service.AuthService, jwtSecret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := file.NewSessionRepository(filepath.Join(t.TempDir(), "sessions.json"))
	gen := generator.New(rand.New(rand.NewSource(1)))
	sessionService := service.NewSessionService(cat, gen, repo)
	playbackManager := service.NewPlaybackManager(repo)
	t.Cleanup(playbackManager.Shutdown)

	router := gin.New()
	SetupRoutes(router, jwtSecret, authService, sessionService, playbackManager, cat)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func generateRequest() map[string]any {
	return map[string]any{
		"duration": 20,
		"level":    "beginner",
		"goal":     "relaxation",
	}
}

func TestPing(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))
	w := doRequest(t, router, http.MethodGet, "/ping", nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestGenerateSession(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))

	w := doRequest(t, router, http.MethodPost, "/api/v1/sessions", generateRequest(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var session domain.YogaSession
	decodeBody(t, w, &session)
	if session.ID == "" {
		t.Errorf("response session has no id")
	}
	if session.Title != "Calming Flow • 20 min • Beginner" {
		t.Errorf("title = %q", session.Title)
	}
	if len(session.Poses) == 0 {
		t.Errorf("response session has no poses")
	}
}

func TestGenerateSessionValidation(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing duration", map[string]any{"level": "beginner"}},
		{"duration too short", map[string]any{"duration": 3}},
		{"duration too long", map[string]any{"duration": 90}},
		{"bad level", map[string]any{"duration": 20, "level": "expert"}},
		{"bad goal", map[string]any{"duration": 20, "goal": "zen"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/v1/sessions", tc.body, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGenerateSessionEmptyCatalog(t *testing.T) {
	router := newTestRouter(t, catalog.Empty())

	w := doRequest(t, router, http.MethodPost, "/api/v1/sessions", generateRequest(), "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422: %s", w.Code, w.Body.String())
	}
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))

	w := doRequest(t, router, http.MethodPost, "/api/v1/sessions", generateRequest(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created domain.YogaSession
	decodeBody(t, w, &created)

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed []domain.YogaSession
	decodeBody(t, w, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("listed %d sessions: %+v", len(listed), listed)
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions/"+created.ID, nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodDelete, "/api/v1/sessions/"+created.ID, nil, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions/"+created.ID, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestListSessionsEmptyIsArray(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))
	w := doRequest(t, router, http.MethodGet, "/api/v1/sessions", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))
	w := doRequest(t, router, http.MethodGet, "/api/v1/sessions/no-such-id", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListPoses(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))

	w := doRequest(t, router, http.MethodGet, "/api/v1/poses", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var poses []domain.PoseRecord
	decodeBody(t, w, &poses)
	if len(poses) != 5 {
		t.Errorf("listed %d poses, want 5", len(poses))
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/poses?category=relaxation", nil, "")
	decodeBody(t, w, &poses)
	if len(poses) != 2 {
		t.Errorf("relaxation filter gave %d poses, want 2", len(poses))
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/poses?category=cardio", nil, "")
	if got := w.Body.String(); got != "[]" {
		t.Errorf("empty category body = %q, want empty JSON array", got)
	}
}

func TestSearchPoses(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))

	w := doRequest(t, router, http.MethodGet, "/api/v1/poses/search?q=virabhadrasana", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var poses []domain.PoseRecord
	decodeBody(t, w, &poses)
	if len(poses) != 1 || poses[0].ID != "warrior-2" {
		t.Errorf("search result = %+v", poses)
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/poses/search", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing query status = %d, want 400", w.Code)
	}
}

func TestPlaybackEndpoints(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))

	w := doRequest(t, router, http.MethodPost, "/api/v1/sessions", generateRequest(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	var created domain.YogaSession
	decodeBody(t, w, &created)
	base := "/api/v1/sessions/" + created.ID + "/playback"

	w = doRequest(t, router, http.MethodPost, base+"/start", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("start status = %d: %s", w.Code, w.Body.String())
	}
	var status map[string]any
	decodeBody(t, w, &status)
	if status["state"] != "running" {
		t.Errorf("state after start = %v", status["state"])
	}

	// Starting an already running session conflicts.
	w = doRequest(t, router, http.MethodPost, base+"/start", nil, "")
	if w.Code != http.StatusConflict {
		t.Errorf("second start status = %d, want 409", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, base+"/pause", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("pause status = %d", w.Code)
	}
	decodeBody(t, w, &status)
	if status["state"] != "paused" {
		t.Errorf("state after pause = %v", status["state"])
	}

	w = doRequest(t, router, http.MethodPost, base+"/next", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("next status = %d", w.Code)
	}
	decodeBody(t, w, &status)
	if status["poseIndex"] != float64(1) {
		t.Errorf("poseIndex after next = %v", status["poseIndex"])
	}

	w = doRequest(t, router, http.MethodGet, base, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, base+"/reset", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}
	decodeBody(t, w, &status)
	if status["state"] != "idle" {
		t.Errorf("state after reset = %v", status["state"])
	}
}

func TestPlaybackUnknownSession(t *testing.T) {
	router := newTestRouter(t, testCatalog(t))
	w := doRequest(t, router, http.MethodPost, "/api/v1/sessions/ghost/playback/start", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAuthProtectedRoutes(t *testing.T) {
	const secret = "test-secret"
	hash, err := bcrypt.GenerateFromPassword([]byte("om-shanti"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	authService := service.NewAuthService(string(hash), secret, time.Hour)
	router := newTestRouterAuth(t, testCatalog(t), authService, secret)

	// Poses stay public, sessions do not.
	if w := doRequest(t, router, http.MethodGet, "/api/v1/poses", nil, ""); w.Code != http.StatusOK {
		t.Errorf("public poses status = %d", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, "/api/v1/sessions", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated sessions status = %d, want 401", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, "/api/v1/sessions", nil, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", w.Code)
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", map[string]any{"password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", map[string]any{"password": "om-shanti"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var login LoginResponse
	decodeBody(t, w, &login)
	if login.Token == "" {
		t.Fatalf("login returned no token")
	}

	if w := doRequest(t, router, http.MethodGet, "/api/v1/sessions", nil, login.Token); w.Code != http.StatusOK {
		t.Errorf("authenticated sessions status = %d: %s", w.Code, w.Body.String())
	}
}
