package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/mw"
	"minimarks/internal/httpserver/routes"
	"minimarks/internal/logger"
	"minimarks/internal/session"
	"minimarks/internal/store/sqlstore"
	"minimarks/internal/web"
)

const testDBFile = "./handlers_test.db"

var testStore *sqlstore.SQLStore

func TestMain(m *testing.M) {
	_ = os.Remove(testDBFile)

	var err error
	testStore, err = sqlstore.New("sqlite3", testDBFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = testStore.Close()
	_ = os.Remove(testDBFile)
	os.Exit(code)
}

// newTestServer builds the full route surface on top of the shared test
// database, with in-memory sessions.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.Nop()
	sessions := session.NewMemoryStore(time.Hour)

	d := deps.Deps{
		Logger:            log,
		Store:             testStore,
		Sessions:          sessions,
		StartTime:         time.Now(),
		Version:           "test",
		PerPage:           30,
		SessionTTL:        time.Hour,
		LoginBurst:        100,
		LoginRefillPerMin: 100,
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	d.Renderer = renderer

	r := chi.NewRouter()
	r.Use(mw.Viewer(sessions, testStore, log))
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns an HTTP client with a cookie jar that does not follow
// redirects, so tests can assert on Location headers.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.PostForm(rawURL, form)
	if err != nil {
		t.Fatalf("POST %s: %v", rawURL, err)
	}
	return resp
}

func get(t *testing.T, c *http.Client, rawURL string) *http.Response {
	t.Helper()
	resp, err := c.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assertStatus(t, resp, http.StatusFound)
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

// registerAndLogin creates a fresh account and logs the client in.
func registerAndLogin(t *testing.T, c *http.Client, base, username string) {
	t.Helper()

	resp := postForm(t, c, base+"/register", url.Values{
		"username":  {username},
		"email":     {username + "@example.com"},
		"password":  {"hunter22"},
		"password2": {"hunter22"},
	})
	resp.Body.Close()
	assertRedirect(t, resp, "/login")

	resp = postForm(t, c, base+"/login", url.Values{
		"username": {username},
		"password": {"hunter22"},
	})
	resp.Body.Close()
	assertRedirect(t, resp, "/")
}

func TestAnonymousHomeRedirectsToPublic(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	resp := get(t, c, srv.URL+"/")
	resp.Body.Close()
	assertRedirect(t, resp, "/public")
}

func TestRegisterLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	registerAndLogin(t, c, srv.URL, "flow_user")

	resp := get(t, c, srv.URL+"/")
	assertStatus(t, resp, http.StatusOK)
	body := bodyString(t, resp)
	if !strings.Contains(body, "My bookmarks") {
		t.Errorf("own feed missing title, got:\n%s", body)
	}
	if !strings.Contains(body, "flow_user") {
		t.Errorf("own feed does not show the logged-in username")
	}
}

func TestRegisterValidationEchoesForm(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	resp := postForm(t, c, srv.URL+"/register", url.Values{
		"username":  {"echo_user"},
		"email":     {"echo_user@example.com"},
		"password":  {"one"},
		"password2": {"two"},
	})
	assertStatus(t, resp, http.StatusOK)
	body := bodyString(t, resp)
	if !strings.Contains(body, "The two passwords do not match") {
		t.Errorf("missing validation message, got:\n%s", body)
	}
	if !strings.Contains(body, `value="echo_user"`) {
		t.Errorf("username not echoed back into the form")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "wrongpw_user")

	// Fresh client, wrong password.
	c2 := newClient(t)
	resp := postForm(t, c2, srv.URL+"/login", url.Values{
		"username": {"wrongpw_user"},
		"password": {"not-the-password"},
	})
	assertStatus(t, resp, http.StatusOK)
	body := bodyString(t, resp)
	if !strings.Contains(body, "invalid username or password") {
		t.Errorf("missing credential error, got:\n%s", body)
	}
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "logout_user")

	resp := get(t, c, srv.URL+"/logout")
	resp.Body.Close()
	assertRedirect(t, resp, "/")

	resp = get(t, c, srv.URL+"/")
	resp.Body.Close()
	assertRedirect(t, resp, "/public")
}

func TestAddBookmarkRequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	resp := postForm(t, c, srv.URL+"/add_bookmark", url.Values{
		"url":  {"example.com"},
		"desc": {"nope"},
	})
	resp.Body.Close()
	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestAddAndDeleteBookmark(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "adder_user")

	resp := postForm(t, c, srv.URL+"/add_bookmark", url.Values{
		"url":    {"example.com/page"},
		"desc":   {"A page worth keeping"},
		"public": {"on"},
	})
	resp.Body.Close()
	assertRedirect(t, resp, "/")

	resp = get(t, c, srv.URL+"/")
	assertStatus(t, resp, http.StatusOK)
	body := bodyString(t, resp)
	if !strings.Contains(body, "A page worth keeping") {
		t.Fatalf("own feed missing new bookmark, got:\n%s", body)
	}
	if !strings.Contains(body, "http://example.com/page") {
		t.Errorf("bookmark URL was not normalized with a scheme")
	}

	// Public bookmark shows up on the global feed.
	resp = get(t, c, srv.URL+"/public")
	assertStatus(t, resp, http.StatusOK)
	if !strings.Contains(bodyString(t, resp), "A page worth keeping") {
		t.Errorf("public feed missing the public bookmark")
	}

	// The own feed carries the delete link; use it.
	delPath := extractDeleteLink(t, body)
	resp = get(t, c, srv.URL+delPath)
	resp.Body.Close()
	assertRedirect(t, resp, "/")

	resp = get(t, c, srv.URL+"/")
	if strings.Contains(bodyString(t, resp), "A page worth keeping") {
		t.Errorf("bookmark still listed after deletion")
	}
}

func TestAddBookmarkValidationError(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "invalid_add_user")

	resp := postForm(t, c, srv.URL+"/add_bookmark", url.Values{
		"url":  {"example.com"},
		"desc": {""},
	})
	assertStatus(t, resp, http.StatusOK)
	body := bodyString(t, resp)
	if !strings.Contains(body, "You need to add a name to this bookmark!") {
		t.Errorf("missing validation message, got:\n%s", body)
	}
}

func TestDeleteBookmarkOwnership(t *testing.T) {
	srv := newTestServer(t)

	owner := newClient(t)
	registerAndLogin(t, owner, srv.URL, "delete_owner")
	resp := postForm(t, owner, srv.URL+"/add_bookmark", url.Values{
		"url":  {"keepme.example.com"},
		"desc": {"Owned bookmark"},
	})
	resp.Body.Close()
	assertRedirect(t, resp, "/")

	resp = get(t, owner, srv.URL+"/")
	delPath := extractDeleteLink(t, bodyString(t, resp))

	// Another user hitting the same delete URL is a silent no-op.
	intruder := newClient(t)
	registerAndLogin(t, intruder, srv.URL, "delete_intruder")
	resp = get(t, intruder, srv.URL+delPath)
	resp.Body.Close()
	assertRedirect(t, resp, "/")

	resp = get(t, owner, srv.URL+"/")
	if !strings.Contains(bodyString(t, resp), "Owned bookmark") {
		t.Errorf("bookmark deleted by a non-owner")
	}
}

func TestDeleteBookmarkBadID(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "badid_user")

	resp := get(t, c, srv.URL+"/del_bookmark/notanumber")
	resp.Body.Close()
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestUserFeed(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "feed_owner")

	for _, f := range []url.Values{
		{"url": {"public.example.com"}, "desc": {"Shared with everyone"}, "public": {"on"}},
		{"url": {"secret.example.com"}, "desc": {"Kept to myself"}},
	} {
		resp := postForm(t, c, srv.URL+"/add_bookmark", f)
		resp.Body.Close()
		assertRedirect(t, resp, "/")
	}

	// A stranger sees only the public bookmark.
	stranger := newClient(t)
	resp := get(t, stranger, srv.URL+"/u/feed_owner")
	assertStatus(t, resp, http.StatusOK)
	body := bodyString(t, resp)
	if !strings.Contains(body, "Shared with everyone") {
		t.Errorf("user feed missing public bookmark")
	}
	if strings.Contains(body, "Kept to myself") {
		t.Errorf("user feed leaks a private bookmark")
	}
}

func TestUserFeedUnknownUser(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	resp := get(t, c, srv.URL+"/u/nobody_here")
	resp.Body.Close()
	assertStatus(t, resp, http.StatusNotFound)
}

func TestSaveBookmarklet(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "bookmarklet_user")

	resp := get(t, c, srv.URL+"/save?url=fast.example.com&title=Saved+in+passing")
	resp.Body.Close()
	assertStatus(t, resp, http.StatusNoContent)

	// Saved private by default: own feed has it, public feed does not.
	resp = get(t, c, srv.URL+"/")
	if !strings.Contains(bodyString(t, resp), "Saved in passing") {
		t.Errorf("own feed missing bookmarklet save")
	}
	resp = get(t, c, srv.URL+"/public")
	if strings.Contains(bodyString(t, resp), "Saved in passing") {
		t.Errorf("bookmarklet save leaked to the public feed")
	}
}

func TestSaveBookmarkletErrors(t *testing.T) {
	srv := newTestServer(t)

	anon := newClient(t)
	resp := get(t, anon, srv.URL+"/save?url=x.example.com&title=x")
	resp.Body.Close()
	assertStatus(t, resp, http.StatusUnauthorized)

	c := newClient(t)
	registerAndLogin(t, c, srv.URL, "bookmarklet_err_user")
	resp = get(t, c, srv.URL+"/save?title=missing-url")
	resp.Body.Close()
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	resp := get(t, c, srv.URL+"/healthz")
	assertStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	body := bodyString(t, resp)
	if !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("healthz body = %s", body)
	}
}

// extractDeleteLink pulls the first /del_bookmark/{id} href out of a feed page.
func extractDeleteLink(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, "/del_bookmark/")
	if idx < 0 {
		t.Fatalf("no delete link in feed page:\n%s", body)
	}
	end := idx
	for end < len(body) && body[end] != '"' {
		end++
	}
	return body[idx:end]
}
