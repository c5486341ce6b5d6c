package testkit

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/cache"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
)

// Sessions returns a session manager over a fresh memory store.
func Sessions() *session.Manager {
	return session.NewManager(cache.NewMemory(), session.Options{
		CookieName: "storefront_session",
		TTL:        time.Hour,
		HTTPOnly:   true,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
		Secret:     []byte("testkit-secret"),
	})
}

// Client is a browser-like client for an httptest server: it keeps cookies
// and never follows redirects, so tests can assert on 302s.
type Client struct {
	t      testing.TB
	server *httptest.Server
	http   *http.Client
}

// Response is a fully read response.
type Response struct {
	Status   int
	Body     string
	Location string
	Header   http.Header
}

// NewClient starts handler on an httptest server for the life of t.
func NewClient(t testing.TB, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &Client{
		t:      t,
		server: srv,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Timeout: 10 * time.Second,
		},
	}
}

// URL returns the absolute URL of path on the test server.
func (c *Client) URL(path string) string { return c.server.URL + path }

// Get issues a GET request.
func (c *Client) Get(path string) Response {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.URL(path), nil)
	require.NoError(c.t, err)
	return c.Do(req)
}

// PostForm issues a urlencoded POST.
func (c *Client) PostForm(path string, form url.Values) Response {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.URL(path), strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// Do sends req with the client's cookies.
func (c *Client) Do(req *http.Request) Response {
	c.t.Helper()

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	return Response{
		Status:   resp.StatusCode,
		Body:     string(body),
		Location: resp.Header.Get("Location"),
		Header:   resp.Header,
	}
}

// Cookies returns the cookies the jar would send to the server.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.server.URL)
	require.NoError(c.t, err)
	return c.http.Jar.Cookies(u)
}

// Login posts credentials to /login and requires the redirect home.
func (c *Client) Login(email, password string) {
	c.t.Helper()
	resp := c.PostForm("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(c.t, http.StatusFound, resp.Status, "login failed: %s", resp.Body)
	require.Equal(c.t, "/", resp.Location, "login failed")
}
