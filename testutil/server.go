package testutil

import (
	"bytes"
	"compress/gzip"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Accounts are the Basic auth credentials accepted under /auth.
var Accounts = gin.Accounts{"user": "secret"}

// ETagValue is the entity tag served by /etag.
const ETagValue = `"v1"`

// Echo is the JSON document returned by /echo.
type Echo struct {
	Method  string              `json:"method"`
	Path    string              `json:"path"`
	Query   string              `json:"query"`
	Body    string              `json:"body"`
	Headers map[string][]string `json:"headers"`
}

// Server is a scripted HTTP server for tests.
type Server struct {
	*httptest.Server
	Engine *gin.Engine

	mu       sync.Mutex
	requests []Echo
}

// NewServer starts a plaintext server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := newServer()
	s.Server = httptest.NewServer(s.Engine)
	t.Cleanup(s.Close)
	return s
}

// NewTLSServer starts a TLS server with cfg that is closed when the test ends.
func NewTLSServer(t testing.TB, cfg *tls.Config) *Server {
	t.Helper()
	s := newServer()
	s.Server = httptest.NewUnstartedServer(s.Engine)
	s.TLS = cfg
	s.StartTLS()
	t.Cleanup(s.Close)
	return s
}

// Requests returns every request the server received, in order.
func (s *Server) Requests() []Echo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Echo(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Echo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Echo{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func newServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{Engine: gin.New()}
	s.Engine.Use(gin.Recovery(), s.record)
	s.routes()
	return s
}

// record captures every request before routing.
func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, echoOf(c.Request, body))
	s.mu.Unlock()
	c.Next()
}

func echoOf(r *http.Request, body []byte) Echo {
	return Echo{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.RawQuery,
		Body:    string(body),
		Headers: r.Header.Clone(),
	}
}

func (s *Server) routes() {
	e := s.Engine

	e.Any("/echo", func(c *gin.Context) {
		last, _ := s.LastRequest()
		c.JSON(http.StatusOK, last)
	})

	e.GET("/text", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte("hello"))
	})

	e.GET("/latin1", func(c *gin.Context) {
		// "café" in ISO-8859-1
		c.Data(http.StatusOK, "text/html; charset=ISO-8859-1", []byte{'c', 'a', 'f', 0xe9})
	})

	e.GET("/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"a": 1, "items": []gin.H{{"name": "first"}, {"name": "second"}}})
	})

	e.GET("/gzip", func(c *gin.Context) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`{"compressed":true}`))
		_ = zw.Close()
		c.Header("Content-Encoding", "gzip")
		c.Data(http.StatusOK, "application/json", buf.Bytes())
	})

	// /cookies/set?name=value sets one cookie per query parameter, in sorted
	// order. An empty value asks the client to forget the cookie.
	e.GET("/cookies/set", func(c *gin.Context) {
		query := c.Request.URL.Query()
		names := make([]string, 0, len(query))
		for name := range query {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.Writer.Header().Add("Set-Cookie", name+"="+query.Get(name)+"; Path=/")
		}
		c.Status(http.StatusOK)
	})

	e.GET("/cookies", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"cookie": c.GetHeader("Cookie")})
	})

	e.GET("/etag", func(c *gin.Context) {
		if c.GetHeader("If-None-Match") == ETagValue {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", ETagValue)
		c.Data(http.StatusOK, "text/plain", []byte("tagged"))
	})

	// /redirect/:code answers with the given status and a Location of
	// /echo, or of the "to" query parameter when present.
	e.Any("/redirect/:code", func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		location := c.DefaultQuery("to", "/echo")
		c.Header("Location", location)
		c.Status(code)
	})

	e.GET("/redirect-without-location", func(c *gin.Context) {
		c.Status(http.StatusFound)
	})

	e.POST("/form", func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		out := gin.H{}
		for k, v := range c.Request.PostForm {
			out[k] = strings.Join(v, ",")
		}
		c.JSON(http.StatusOK, out)
	})

	auth := e.Group("/auth", gin.BasicAuth(Accounts))
	auth.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(gin.AuthUserKey)})
	})
}
