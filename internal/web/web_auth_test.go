package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRedirectsAnonymousToLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestRootRedirectsSignedInToPlayers(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()

	rr := ts.get("/")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/players", rr.Header().Get("Location"))
}

func TestRegister(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"username":  {"alice"},
		"password":  {"secret123"},
		"password2": {"secret123"},
	}
	rr := ts.post("/register", form)

	// Registration does not log in
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.False(t, ts.cookies.hasSession())

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Registration successful")
	assertContainsElement(t, doc, "form#login-form")

	count, err := ts.app.Store.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("alice", "secret123")

	rr := ts.post("/register", url.Values{
		"username":  {"alice"},
		"password":  {"other"},
		"password2": {"other"},
	})

	// Re-rendered inline, not redirected
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, `.field-error[data-field="username"]`, "already taken")
	assert.Equal(t, "alice", doc.Find("input#username").AttrOr("value", ""))

	count, err := ts.app.Store.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/register", url.Values{
		"username":  {"alice"},
		"password":  {"secret123"},
		"password2": {"secret124"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, `.field-error[data-field="password2"]`, "Passwords must match.")
	assertNotContainsElement(t, doc, `.field-error[data-field="username"]`)

	count, err := ts.app.Store.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRegisterRejectsBlankPassword(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/register", url.Values{
		"username":  {"alice"},
		"password":  {"   "},
		"password2": {"   "},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, `.field-error[data-field="password"]`, "This field is required.")

	count, err := ts.app.Store.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRegisterRequiredFields(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/register", url.Values{"username": {"   "}})

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	for _, field := range []string{"username", "password", "password2"} {
		assertContainsText(t, doc, `.field-error[data-field="`+field+`"]`, "This field is required.")
	}
}

func TestLoginRedirectsToPlayers(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("alice", "secret123")

	rr := ts.login("alice", "secret123")

	assert.Equal(t, "/players", rr.Header().Get("Location"))

	cookie := ts.cookies.cookies["session"]
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestLoginFollowsLocalNext(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("alice", "secret123")

	rr := ts.post("/login", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
		"next":     {"/teams/14"},
	})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/teams/14", rr.Header().Get("Location"))
}

func TestLoginIgnoresExternalNext(t *testing.T) {
	for _, next := range []string{
		"https://evil.example",
		"//evil.example",
		`/\evil.example`,
		"players",
		"/\t/evil.example",
		"/\n/evil.example",
		"/\r/evil.example",
		"/\x7f/evil.example",
	} {
		t.Run(next, func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.register("alice", "secret123")

			rr := ts.post("/login", url.Values{
				"username": {"alice"},
				"password": {"secret123"},
				"next":     {next},
			})

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/players", rr.Header().Get("Location"))
		})
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("alice", "secret123")
	delete(ts.cookies.cookies, "flash")

	wrongPassword := ts.post("/login", url.Values{"username": {"alice"}, "password": {"nope"}})
	unknownUser := ts.post("/login", url.Values{"username": {"bob"}, "password": {"secret123"}})

	assert.Equal(t, http.StatusOK, wrongPassword.Code)
	assert.Equal(t, http.StatusOK, unknownUser.Code)

	wrongDoc := parseHTML(wrongPassword.Body)
	unknownDoc := parseHTML(unknownUser.Body)
	assert.Equal(t, "Invalid username or password.", wrongDoc.Find(".flash-error").Text())
	assert.Equal(t, wrongDoc.Find(".flash-error").Text(), unknownDoc.Find(".flash-error").Text())
	assert.False(t, ts.cookies.hasSession())
}

func TestLoginPageCarriesNext(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/login?next=%2Fgames")

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assert.Equal(t, "/games", doc.Find(`#login-form input[name="next"]`).AttrOr("value", ""))
}

func TestAuthPagesRedirectSignedInUser(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()

	for _, path := range []string{"/login", "/register"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Equal(t, "/players", rr.Header().Get("Location"), path)
	}
}

func TestNavShowsSignedInUser(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()
	ts.upstream.respond("/players", []any{player(237, "LeBron", "James")})

	doc := parseHTML(ts.get("/players").Body)

	assertContainsText(t, doc, "nav .user", "fan")
	assertContainsElement(t, doc, `nav a.logout[href="/logout"]`)
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()
	token := ts.cookies.cookies["session"].Value

	rr := ts.get("/logout")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.False(t, ts.cookies.hasSession())

	rr = ts.followRedirect(rr)
	assertContainsText(t, parseHTML(rr.Body), ".flash-info", "logged out")

	// The old token no longer resolves
	ts.cookies.cookies["session"] = &http.Cookie{Name: "session", Value: token}
	rr = ts.get("/players")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, 0, ts.upstream.callCount())
}

func TestSessionExpires(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()

	ts.app.MockClock.Advance(25 * time.Hour)
	rr := ts.get("/players")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fplayers", rr.Header().Get("Location"))
}

func TestTamperedSessionCookieIsAnonymous(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()

	ts.cookies.cookies["session"].Value += "x"
	rr := ts.get("/teams")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fteams", rr.Header().Get("Location"))
}
