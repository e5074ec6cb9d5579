package wire

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository/repotest"
	"movie-favorites/pkg/moviedb"
	"movie-favorites/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const catalogBody = `{"page":1,"results":[{"id":847,"title":"Willow"}]}`

type testEnv struct {
	router  http.Handler
	store   *repotest.Store
	catalog *httptest.Server

	mu      sync.Mutex
	queries []string
	status  int
}

func (e *testEnv) failUpstream(code int) {
	e.mu.Lock()
	e.status = code
	e.mu.Unlock()
}

func (e *testEnv) upstreamQueries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.queries...)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{}

	env.catalog = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.queries = append(env.queries, r.URL.Query().Get("query"))
		status := env.status
		env.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogBody))
	}))
	t.Cleanup(env.catalog.Close)

	repo, store := repotest.New()
	env.store = store

	cfg := &utils.Config{
		Auth:     utils.AuthConfig{TokenTTLHours: 1},
		MovieAPI: utils.MovieAPIConfig{APIKey: "k", BaseURL: env.catalog.URL},
	}
	client := moviedb.NewClient(cfg.MovieAPI.APIKey, cfg.MovieAPI.BaseURL, zap.NewNop())

	env.router = Wiring(repo, client, nil, cfg, zap.NewNop()).Router
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) signUp(t *testing.T, email string) (token, userID string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signup: %v", err)
	}
	return resp.Token, resp.ID
}

func decodeFavorites(t *testing.T, rec *httptest.ResponseRecorder) []entity.Favorite {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out []entity.Favorite
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode favorites %q: %v", rec.Body.String(), err)
	}
	if out == nil {
		t.Fatalf("Expected a JSON array, got %s", rec.Body.String())
	}
	return out
}

func willowBody() map[string]any {
	return map[string]any{
		"title":       "Willow",
		"genre":       "Fantasy",
		"director":    "Ron Howard",
		"year":        1988,
		"poster":      "p.jpg",
		"runtime":     126,
		"movie_db_id": 12345,
	}
}

func TestFavorites_EndToEndScenario(t *testing.T) {
	env := newTestEnv(t)
	tokenA, userA := env.signUp(t, "a@example.com")
	tokenB, _ := env.signUp(t, "b@example.com")

	created := decodeFavorites(t, env.do(t, http.MethodPost, "/api/favorites", tokenA, willowBody()))
	if len(created) != 1 {
		t.Fatalf("Expected one created row, got %d", len(created))
	}
	fav := created[0]
	if fav.OwnerID.String() != userA || fav.Title != "Willow" || fav.MovieDBID != 12345 {
		t.Fatalf("Unexpected created row %+v", fav)
	}
	if fav.Year == nil || *fav.Year != 1988 || fav.Runtime == nil || *fav.Runtime != 126 {
		t.Errorf("Numeric fields not stored: %+v", fav)
	}

	listA := decodeFavorites(t, env.do(t, http.MethodGet, "/api/favorites", tokenA, nil))
	if len(listA) != 1 || listA[0].ID != fav.ID {
		t.Fatalf("A should see its row, got %+v", listA)
	}

	if listB := decodeFavorites(t, env.do(t, http.MethodGet, "/api/favorites", tokenB, nil)); len(listB) != 0 {
		t.Fatalf("B should see nothing, got %+v", listB)
	}

	path := "/api/favorites/" + strconv.FormatInt(fav.ID, 10)

	if deleted := decodeFavorites(t, env.do(t, http.MethodDelete, path, tokenB, nil)); len(deleted) != 0 {
		t.Fatalf("B must not delete A's row, got %+v", deleted)
	}
	if rows := env.store.Favorites(); len(rows) != 1 {
		t.Fatalf("Row should still exist after foreign delete, got %d rows", len(rows))
	}

	deleted := decodeFavorites(t, env.do(t, http.MethodDelete, path, tokenA, nil))
	if len(deleted) != 1 || deleted[0].ID != fav.ID {
		t.Fatalf("A's delete should return the row, got %+v", deleted)
	}

	if again := decodeFavorites(t, env.do(t, http.MethodDelete, path, tokenA, nil)); len(again) != 0 {
		t.Errorf("Repeated delete should return empty, got %+v", again)
	}

	if listA := decodeFavorites(t, env.do(t, http.MethodGet, "/api/favorites", tokenA, nil)); len(listA) != 0 {
		t.Errorf("A should have no favorites left, got %+v", listA)
	}
}

func TestFavorites_CreateIgnoresOwnerInBody(t *testing.T) {
	env := newTestEnv(t)
	tokenA, userA := env.signUp(t, "a@example.com")
	_, userB := env.signUp(t, "b@example.com")

	body := willowBody()
	body["owner_id"] = userB

	created := decodeFavorites(t, env.do(t, http.MethodPost, "/api/favorites", tokenA, body))
	if len(created) != 1 || created[0].OwnerID.String() != userA {
		t.Fatalf("Owner must be the requester, got %+v", created)
	}

	rows := env.store.Favorites()
	if len(rows) != 1 || rows[0].OwnerID.String() != userA {
		t.Errorf("Exactly one row owned by A expected, got %+v", rows)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		method, path, token string
	}{
		{http.MethodGet, "/api/favorites", ""},
		{http.MethodPost, "/api/favorites", ""},
		{http.MethodDelete, "/api/favorites/1", ""},
		{http.MethodGet, "/api/favorites", "not-a-token"},
		{http.MethodPost, "/api/favorites", "6f1c1f4e-2f7a-4b7e-9a55-0d6c1d7e1a11"},
		{http.MethodPost, "/api/signout", ""},
	}

	for _, tc := range cases {
		rec := env.do(t, tc.method, tc.path, tc.token, willowBody())
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s token=%q: expected 401, got %d", tc.method, tc.path, tc.token, rec.Code)
		}
		var body utils.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
			t.Errorf("%s %s: expected error envelope, got %s", tc.method, tc.path, rec.Body.String())
		}
	}

	if rows := env.store.Favorites(); len(rows) != 0 {
		t.Errorf("Unauthenticated requests must not write, got %d rows", len(rows))
	}
}

func TestSignOut_InvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "a@example.com")

	if rec := env.do(t, http.MethodPost, "/api/signout", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("Signout failed: %d %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, http.MethodGet, "/api/favorites", token, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("Revoked token should get 401, got %d", rec.Code)
	}
}

func TestSignIn_ReturnsWorkingToken(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "a@example.com")

	rec := env.do(t, http.MethodPost, "/auth/signin", "", map[string]string{
		"email":    "a@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Signin failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)

	if rec := env.do(t, http.MethodGet, "/api/favorites", resp.Token, nil); rec.Code != http.StatusOK {
		t.Errorf("Signin token should work, got %d", rec.Code)
	}

	bad := env.do(t, http.MethodPost, "/auth/signin", "", map[string]string{
		"email":    "a@example.com",
		"password": "wrong-password",
	})
	if bad.Code != http.StatusUnauthorized {
		t.Errorf("Wrong password should get 401, got %d", bad.Code)
	}
}

func TestMovies_UnauthenticatedProxy(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/movies?search=willow", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != catalogBody {
		t.Errorf("Expected upstream body verbatim, got %s", rec.Body.String())
	}
	if q := env.upstreamQueries(); len(q) != 1 || q[0] != "willow" {
		t.Errorf("Unexpected upstream queries %v", q)
	}
}

func TestMovies_SearchTermIsEncoded(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/movies?search=rock%26roll", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if q := env.upstreamQueries(); len(q) != 1 || q[0] != "rock&roll" {
		t.Errorf("Search term should reach upstream intact, got %v", q)
	}
}

func TestMovies_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.failUpstream(http.StatusBadGateway)

	rec := env.do(t, http.MethodGet, "/movies?search=willow", "", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	var body utils.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
		t.Errorf("Expected error envelope, got %s", rec.Body.String())
	}
}

func TestFavorites_StoreFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "a@example.com")

	// the session lookup shares the store, so it fails too
	env.store.SetErr(errors.New("connection refused"))
	rec := env.do(t, http.MethodGet, "/api/favorites", token, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestFavorites_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "a@example.com")

	if rec := env.do(t, http.MethodDelete, "/api/favorites/abc", token, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("Non-numeric id should be 400, got %d", rec.Code)
	}

	body := willowBody()
	delete(body, "title")
	if rec := env.do(t, http.MethodPost, "/api/favorites", token, body); rec.Code != http.StatusBadRequest {
		t.Errorf("Missing title should be 400, got %d", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestFavorites_CreateAcceptsNumericText(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.signUp(t, "a@example.com")

	body := willowBody()
	body["movie_db_id"] = "12345"
	body["year"] = "1988"
	body["runtime"] = "126"

	created := decodeFavorites(t, env.do(t, http.MethodPost, "/api/favorites", token, body))
	if len(created) != 1 {
		t.Fatalf("Expected one created row, got %d", len(created))
	}
	fav := created[0]
	if fav.MovieDBID != 12345 || fav.OwnerID.String() != userID {
		t.Errorf("Unexpected created row %+v", fav)
	}
	if fav.Year == nil || *fav.Year != 1988 || fav.Runtime == nil || *fav.Runtime != 126 {
		t.Errorf("Text numbers not stored as integers: %+v", fav)
	}
}

func TestFavorites_CreateNamesBadField(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "a@example.com")

	body := willowBody()
	body["movie_db_id"] = "not-a-number"

	rec := env.do(t, http.MethodPost, "/api/favorites", token, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	var resp utils.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "invalid request body: movie_db_id must be an integer" {
		t.Errorf("Unexpected error message %q", resp.Error)
	}
	if rows := env.store.Favorites(); len(rows) != 0 {
		t.Errorf("Nothing should be stored, got %d rows", len(rows))
	}
}
