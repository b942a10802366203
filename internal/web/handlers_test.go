package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"questwalk/internal/game"
	"questwalk/internal/save"
	"questwalk/internal/session"
)

// fakeBackend is an in-memory stand-in for the remote save store,
// speaking the same wire protocol.
type fakeBackend struct {
	records map[string]save.Record
	fail    bool
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b.fail {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		if q.Has("list") {
			out := make([]save.Summary, 0, len(b.records))
			for name := range b.records {
				out = append(out, save.Summary{ID: "1", Name: name})
			}
			json.NewEncoder(w).Encode(out)
			return
		}
		rec, ok := b.records[q.Get("load")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(rec.Wire())
	case http.MethodPost:
		var rec save.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		if b.records == nil {
			b.records = map[string]save.Record{}
		}
		b.records[rec.Name] = rec
		w.Write([]byte(`{"id": 1}`))
	}
}

func testServer(t *testing.T, backend *fakeBackend) *Server {
	t.Helper()
	if backend == nil {
		backend = &fakeBackend{}
	}
	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)
	client := save.NewClient(api.URL)

	tmplDir := filepath.Join("..", "..", "templates")
	tmpl := template.Must(template.ParseFiles(
		filepath.Join(tmplDir, "layout.html"),
		filepath.Join(tmplDir, "game.html"),
	))
	return &Server{
		Sessions: session.NewMemoryStore[*game.Session](),
		Gateway:  client,
		Tmpl:     tmpl,
		NewSession: func() *game.Session {
			sess := game.NewSession(game.DefaultCatalog(), client)
			sess.TravelDelay = 0
			sess.EndDelay = 0
			return sess
		},
	}
}

// startSession POSTs /start and returns the session cookie.
func startSession(t *testing.T, srv *Server, name string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/start", strings.NewReader("name="+name))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /start: expected 303, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	for _, c := range cookies {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("POST /start: expected a session cookie")
	return nil
}

func getPage(t *testing.T, srv *Server, cookie *http.Cookie) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /: expected 200, got %d", rec.Code)
	}
	return rec.Body.String()
}

func postAction(t *testing.T, srv *Server, cookie *http.Cookie, path, form string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex_NoSession(t *testing.T) {
	srv := testServer(t, nil)
	body := getPage(t, srv, nil)
	if !strings.Contains(body, "Begin the adventure") {
		t.Error("Expected the intro form without a session")
	}
}

func TestHandleStart(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")
	body := getPage(t, srv, cookie)
	if !strings.Contains(body, "Morgan") {
		t.Error("Expected the hero name on the page")
	}
	if !strings.Contains(body, "Welcome, hero!") {
		t.Error("Expected the welcome message")
	}
	if !strings.Contains(body, "action-next") {
		t.Error("Expected the next button")
	}
}

func TestHandleStart_GetNotAllowed(t *testing.T) {
	srv := testServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/start", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /start: expected 405, got %d", rec.Code)
	}
}

func TestHandleStart_ReplacesSession(t *testing.T) {
	srv := testServer(t, nil)
	first := startSession(t, srv, "Morgan")
	second := startSession(t, srv, "Elaine")
	if first.Value == second.Value {
		t.Error("Expected a fresh session id on restart")
	}
}

func TestActionNext(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")

	rec := postAction(t, srv, cookie, "/next", "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /next: expected 303, got %d", rec.Code)
	}
	body := getPage(t, srv, cookie)
	if strings.Contains(body, "action-next") {
		t.Error("Next must be hidden during an encounter")
	}
	if !strings.Contains(body, "action-attack") && !strings.Contains(body, "action-buy") {
		t.Error("Expected an encounter affordance set")
	}
}

func TestActionResolvesAndReturnsToIdle(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")

	rec := postAction(t, srv, cookie, "/next", "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /next: expected 303, got %d", rec.Code)
	}
	body := getPage(t, srv, cookie)
	var path string
	if strings.Contains(body, "action-attack") {
		path = "/attack"
	} else {
		path = "/leave"
	}
	rec = postAction(t, srv, cookie, path, "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST %s: expected 303, got %d", path, rec.Code)
	}
	body = getPage(t, srv, cookie)
	// A fresh hero cannot end the game in one encounter
	if !strings.Contains(body, "action-next") {
		t.Error("Expected to be back at idle")
	}
}

func TestAction_NoSessionRedirects(t *testing.T) {
	srv := testServer(t, nil)
	rec := postAction(t, srv, nil, "/next", "")
	if rec.Code != http.StatusSeeOther {
		t.Errorf("POST /next without session: expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
}

func TestAction_WrongStateRedirects(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")

	// Attack at idle is a raced click, not an error page
	rec := postAction(t, srv, cookie, "/attack", "")
	if rec.Code != http.StatusSeeOther {
		t.Errorf("POST /attack at idle: expected 303, got %d", rec.Code)
	}
}

func TestSelectAction_BadIndex(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")

	rec := postAction(t, srv, cookie, "/buy/select", "item=abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad index, got %d", rec.Code)
	}
	rec = postAction(t, srv, cookie, "/buy/select", "item=-1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a negative index, got %d", rec.Code)
	}
}

func TestHandleSave(t *testing.T) {
	backend := &fakeBackend{}
	srv := testServer(t, backend)
	cookie := startSession(t, srv, "Morgan")

	rec := postAction(t, srv, cookie, "/save", "name=slot1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /save: expected 303, got %d", rec.Code)
	}
	if _, ok := backend.records["slot1"]; !ok {
		t.Error("Expected the save to reach the backend")
	}
	body := getPage(t, srv, cookie)
	if !strings.Contains(body, "The game has been saved.") {
		t.Error("Expected the saved message")
	}
}

func TestHandleSave_NoName(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")
	rec := postAction(t, srv, cookie, "/save", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without a name, got %d", rec.Code)
	}
}

func TestHandleSave_BackendFailure(t *testing.T) {
	backend := &fakeBackend{fail: true}
	srv := testServer(t, backend)
	cookie := startSession(t, srv, "Morgan")
	rec := postAction(t, srv, cookie, "/save", "name=slot1")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 on backend failure, got %d", rec.Code)
	}
}

func TestHandleLoad_WithoutPriorSession(t *testing.T) {
	backend := &fakeBackend{records: map[string]save.Record{
		"slot1": {Name: "slot1", Life: 2, XP: 12, Str: 9, Sta: 8, Gold: 33},
	}}
	srv := testServer(t, backend)

	rec := postAction(t, srv, nil, "/load", "name=slot1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /load: expected 303, got %d", rec.Code)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected a session cookie from load")
	}
	body := getPage(t, srv, cookie)
	if !strings.Contains(body, "Gold: 33") {
		t.Error("Expected the loaded hero on the page")
	}
}

func TestHandleLoad_MissingSaveKeepsSession(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")

	rec := postAction(t, srv, cookie, "/load", "name=ghost")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("POST /load missing: expected 502, got %d", rec.Code)
	}
	body := getPage(t, srv, cookie)
	if !strings.Contains(body, "Morgan") {
		t.Error("A failed load must leave the running session alone")
	}
}

func TestHandleSaves(t *testing.T) {
	backend := &fakeBackend{records: map[string]save.Record{
		"slot1": {Name: "slot1"},
	}}
	srv := testServer(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/saves", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /saves: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "slot1") {
		t.Error("Expected slot1 in the listing")
	}
}

func TestHandleChronicle_ReturnsPDF(t *testing.T) {
	srv := testServer(t, nil)
	cookie := startSession(t, srv, "Morgan")

	req := httptest.NewRequest(http.MethodGet, "/chronicle", http.NoBody)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /chronicle: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected Content-Type application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("Body is not a PDF (missing %PDF header)")
	}
}

func TestHandleChronicle_NoSessionRedirects(t *testing.T) {
	srv := testServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/chronicle", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("GET /chronicle without session: expected 303, got %d", rec.Code)
	}
}

func TestParseIndex(t *testing.T) {
	if i, err := parseIndex("2"); err != nil || i != 2 {
		t.Errorf("parseIndex(2) = %d, %v", i, err)
	}
	if _, err := parseIndex("x"); err == nil {
		t.Error("Expected an error for a non-numeric index")
	}
	if _, err := parseIndex("-3"); err == nil {
		t.Error("Expected an error for a negative index")
	}
}
