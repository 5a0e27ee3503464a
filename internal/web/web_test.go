package web_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/courtside/internal/factory"
	"github.com/mcoot/courtside/internal/testutil"
	"github.com/mcoot/courtside/internal/web"
	"github.com/mcoot/courtside/internal/web/middleware"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t        *testing.T
	handler  http.Handler
	app      *factory.TestApp
	upstream *sportsStub
	cookies  *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
// and the sports API replaced by a stub
func newWebTestServer(t *testing.T) *webTestServer {
	return newWebTestServerWithLimiter(t, nil)
}

func newWebTestServerWithLimiter(t *testing.T, limiter *middleware.RateLimiter) *webTestServer {
	t.Helper()

	upstream := newSportsStub(t)
	app := factory.NewTestApp(upstream.server.URL)

	router := web.NewRouter(web.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		CatalogService: app.CatalogService,
		LoginLimiter:   limiter,
		StaticDir:      "", // No static files in tests
	})

	return &webTestServer{
		t:        t,
		handler:  router,
		app:      app,
		upstream: upstream,
		cookies:  newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// register creates an account through the registration form
func (ts *webTestServer) register(username, password string) {
	ts.t.Helper()
	rr := ts.post("/register", url.Values{
		"username":  {username},
		"password":  {password},
		"password2": {password},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	require.Equal(ts.t, "/login", rr.Header().Get("Location"))
}

// login submits the login form and expects a session
func (ts *webTestServer) login(username, password string) *httptest.ResponseRecorder {
	ts.t.Helper()
	rr := ts.post("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
	return rr
}

// signIn registers and logs in a fresh user, then forgets any pending flash
func (ts *webTestServer) signIn() {
	ts.t.Helper()
	ts.register("fan", "hoops")
	ts.login("fan", "hoops")
	delete(ts.cookies.cookies, "flash")
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// sportsStub stands in for the sports API. Unregistered paths answer 500.
type sportsStub struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []*http.Request
}

func newSportsStub(t *testing.T) *sportsStub {
	t.Helper()

	stub := &sportsStub{routes: make(map[string]http.HandlerFunc)}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.requests = append(stub.requests, r.Clone(r.Context()))
		route, ok := stub.routes[r.URL.Path]
		stub.mu.Unlock()

		if !ok {
			http.Error(w, "unavailable", http.StatusInternalServerError)
			return
		}
		route(w, r)
	}))
	t.Cleanup(stub.server.Close)

	return stub
}

// handle registers a handler for an exact path
func (s *sportsStub) handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = h
}

// respond serves {"data": data} for path
func (s *sportsStub) respond(path string, data any) {
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		panic(err)
	}
	s.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}

// fail answers path with the given status
func (s *sportsStub) fail(path string, status int) {
	s.handle(path, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(status), status)
	})
}

// callCount returns how many requests reached the stub
func (s *sportsStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// lastRequest returns the most recent request that reached the stub
func (s *sportsStub) lastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// queryValues returns one query parameter from every request made to path, in order
func (s *sportsStub) queryValues(path, key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.requests {
		if r.URL.Path == path {
			out = append(out, r.URL.Query().Get(key))
		}
	}
	return out
}

// Fixtures

func lakers() map[string]any {
	return map[string]any{
		"id": 14, "full_name": "Los Angeles Lakers", "name": "Lakers", "city": "Los Angeles",
		"abbreviation": "LAL", "conference": "West", "division": "Pacific",
	}
}

func celtics() map[string]any {
	return map[string]any{
		"id": 2, "full_name": "Boston Celtics", "name": "Celtics", "city": "Boston",
		"abbreviation": "BOS", "conference": "East", "division": "Atlantic",
	}
}

func player(id int, first, last string) map[string]any {
	return map[string]any{
		"id": id, "first_name": first, "last_name": last, "position": "F",
		"height": "6-9", "weight": "250", "jersey_number": "23",
		"college": "None", "country": "USA",
		"draft_year": 2003, "draft_round": 1, "draft_number": 1,
		"team": lakers(),
	}
}

func game(id int, date string) map[string]any {
	return map[string]any{
		"id": id, "date": date, "season": 2023, "status": "Final",
		"home_team_score": 110, "visitor_team_score": 104,
		"home_team": lakers(), "visitor_team": celtics(),
	}
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
