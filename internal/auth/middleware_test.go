package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeParser struct {
	claims *casdoorsdk.Claims
	err    error
	got    string
}

func (f *fakeParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	f.got = token
	return f.claims, f.err
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func TestMiddleware(t *testing.T) {
	claims := &casdoorsdk.Claims{User: casdoorsdk.User{Id: "u-42", Name: "alice", Owner: "school"}}

	tests := []struct {
		name       string
		header     string
		parser     *fakeParser
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer abc", parser: &fakeParser{claims: claims}, wantStatus: http.StatusOK, wantBody: "u-42"},
		{name: "missing header", parser: &fakeParser{claims: claims}, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", parser: &fakeParser{claims: claims}, wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", parser: &fakeParser{err: errors.New("bad signature")}, wantStatus: http.StatusUnauthorized},
		{
			name:       "claims without id",
			header:     "Bearer abc",
			parser:     &fakeParser{claims: &casdoorsdk.Claims{User: casdoorsdk.User{Name: "bob", Owner: "school"}}},
			wantStatus: http.StatusOK,
			wantBody:   "school/bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			newRouter(Middleware(tt.parser)).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestHeaderMiddleware(t *testing.T) {
	r := newRouter(HeaderMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(UserIDHeader, "author-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "author-1", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
