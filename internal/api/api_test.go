package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillsenselab/quotes/internal/auth"
	"github.com/skillsenselab/quotes/internal/auth/password"
	"github.com/skillsenselab/quotes/internal/auth/token"
	"github.com/skillsenselab/quotes/internal/logger"
	"github.com/skillsenselab/quotes/internal/quote"
	"github.com/skillsenselab/quotes/internal/server"
	"github.com/skillsenselab/quotes/internal/user"
)

// newTestAPI builds the full router over an in-memory database with one
// seeded user (john_doe / SecurePassword123!).
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &quote.Quote{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hasher := password.NewBcryptHasher(password.WithCost(4))
	users := user.NewStore(db)
	if err := users.Seed(context.Background(), "john_doe", "john@example.com", "SecurePassword123!", hasher); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tokens, err := token.NewService(token.Config{Secret: "api-test-secret", TTL: time.Minute})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	strategy := auth.NewBearerJWT(tokens)

	return NewRouter(Deps{
		ServerConfig: server.Config{},
		Auth:         auth.NewService(auth.NewLocalPassword(users, hasher), strategy),
		Tokens:       strategy,
		Quotes:       quote.NewService(quote.NewRepository(db)),
		Log:          logger.NewDefault("api-test"),
	})
}

func doJSON(r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, r *gin.Engine, username, pass string) string {
	t.Helper()
	rr := doJSON(r, "POST", "/api/auth/login", "", map[string]string{
		"username": username,
		"password": pass,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected non-empty access token")
	}
	return resp.AccessToken
}

func TestLogin_Success(t *testing.T) {
	r := newTestAPI(t)

	tok := login(t, r, "john_doe", "SecurePassword123!")
	if len(strings.Split(tok, ".")) != 3 {
		t.Errorf("expected a compact JWS, got %q", tok)
	}
}

func TestLogin_WrongPasswordAndUnknownUser_SameResponse(t *testing.T) {
	r := newTestAPI(t)

	wrong := doJSON(r, "POST", "/api/auth/login", "", map[string]string{
		"username": "john_doe", "password": "wrong-password",
	})
	unknown := doJSON(r, "POST", "/api/auth/login", "", map[string]string{
		"username": "nobody", "password": "SecurePassword123!",
	})

	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Error("wrong-password and unknown-user responses must be identical")
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	r := newTestAPI(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestEndToEnd_LoginThenProtectedWrite(t *testing.T) {
	r := newTestAPI(t)
	tok := login(t, r, "john_doe", "SecurePassword123!")

	created := doJSON(r, "POST", "/api/quotes", tok, map[string]string{
		"author":  "Rob Pike",
		"content": "Clear is better than clever.",
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", created.Code, created.Body.String())
	}

	var resp struct {
		Data quote.Quote `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode created quote: %v", err)
	}
	if resp.Data.ID == "" {
		t.Error("expected generated quote id")
	}
	if resp.Data.CreatedBy == "" {
		t.Error("expected quote to be attributed to the authenticated user")
	}

	// The quote is now readable without any token.
	got := doJSON(r, "GET", "/api/quotes/"+resp.Data.ID, "", nil)
	if got.Code != http.StatusOK {
		t.Errorf("expected 200 on public read, got %d", got.Code)
	}
}

func TestProtectedRoute_NoHeader(t *testing.T) {
	r := newTestAPI(t)

	rr := doJSON(r, "POST", "/api/quotes", "", map[string]string{
		"author": "A", "content": "x",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED, got %q", body.Error.Code)
	}
}

func TestProtectedRoute_InvalidToken(t *testing.T) {
	r := newTestAPI(t)

	for _, tok := range []string{"garbage", "a.b.c"} {
		rr := doJSON(r, "DELETE", "/api/quotes/some-id", tok, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("token %q: expected 401, got %d", tok, rr.Code)
		}
	}
}

func TestPublicRoute_NoHeader(t *testing.T) {
	r := newTestAPI(t)

	rr := doJSON(r, "GET", "/api/quotes", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on public list, got %d", rr.Code)
	}

	var resp struct {
		Data []quote.Quote `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
}

func TestProtectedUpdateAndDelete(t *testing.T) {
	r := newTestAPI(t)
	tok := login(t, r, "john_doe", "SecurePassword123!")

	created := doJSON(r, "POST", "/api/quotes", tok, map[string]string{
		"author": "A", "content": "before",
	})
	var resp struct {
		Data quote.Quote `json:"data"`
	}
	_ = json.Unmarshal(created.Body.Bytes(), &resp)
	id := resp.Data.ID

	if rr := doJSON(r, "PUT", "/api/quotes/"+id, "", map[string]string{"author": "A", "content": "x"}); rr.Code != http.StatusUnauthorized {
		t.Errorf("update without token: expected 401, got %d", rr.Code)
	}

	updated := doJSON(r, "PUT", "/api/quotes/"+id, tok, map[string]string{"author": "A", "content": "after"})
	if updated.Code != http.StatusOK {
		t.Errorf("update: expected 200, got %d (%s)", updated.Code, updated.Body.String())
	}

	if rr := doJSON(r, "DELETE", "/api/quotes/"+id, tok, nil); rr.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rr.Code)
	}

	if rr := doJSON(r, "GET", "/api/quotes/"+id, "", nil); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestList_MetaReflectsClampedPageSize(t *testing.T) {
	r := newTestAPI(t)
	tok := login(t, r, "john_doe", "SecurePassword123!")

	for i := 0; i < 25; i++ {
		rr := doJSON(r, "POST", "/api/quotes", tok, map[string]string{
			"author": "A", "content": "q",
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i, rr.Code)
		}
	}

	// An oversized page_size falls back to the default; the metadata must
	// describe the page actually returned, not the raw query value.
	rr := doJSON(r, "GET", "/api/quotes?page_size=1000", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Data []quote.Quote `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			PageSize   int   `json:"pageSize"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}

	if len(resp.Data) != quote.DefaultPageSize {
		t.Errorf("expected %d quotes, got %d", quote.DefaultPageSize, len(resp.Data))
	}
	if resp.Meta.PageSize != len(resp.Data) {
		t.Errorf("meta.pageSize=%d but %d items returned", resp.Meta.PageSize, len(resp.Data))
	}
	if resp.Meta.Total != 25 {
		t.Errorf("expected total 25, got %d", resp.Meta.Total)
	}
	if resp.Meta.TotalPages != 2 {
		t.Errorf("expected 2 pages at the effective page size, got %d", resp.Meta.TotalPages)
	}
}

func TestValidation_CreateQuote(t *testing.T) {
	r := newTestAPI(t)
	tok := login(t, r, "john_doe", "SecurePassword123!")

	rr := doJSON(r, "POST", "/api/quotes", tok, map[string]string{"author": "", "content": ""})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty fields, got %d", rr.Code)
	}
}

func TestHealth_Public(t *testing.T) {
	r := newTestAPI(t)

	rr := doJSON(r, "GET", "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestExpiredToken_Rejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	_ = db.AutoMigrate(&user.User{}, &quote.Quote{})

	hasher := password.NewBcryptHasher(password.WithCost(4))
	users := user.NewStore(db)
	_ = users.Seed(context.Background(), "john_doe", "", "SecurePassword123!", hasher)

	// One-second TTL; sleep past it before presenting the token.
	tokens, _ := token.NewService(token.Config{Secret: "api-test-secret", TTL: time.Second})
	strategy := auth.NewBearerJWT(tokens)

	r := NewRouter(Deps{
		ServerConfig: server.Config{},
		Auth:         auth.NewService(auth.NewLocalPassword(users, hasher), strategy),
		Tokens:       strategy,
		Quotes:       quote.NewService(quote.NewRepository(db)),
		Log:          logger.NewDefault("api-test"),
	})

	tok := login(t, r, "john_doe", "SecurePassword123!")
	time.Sleep(1100 * time.Millisecond)

	rr := doJSON(r, "POST", "/api/quotes", tok, map[string]string{"author": "A", "content": "x"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", rr.Code)
	}
}
