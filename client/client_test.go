package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := New(server.URL, NewMemorySession(), opts...)
	require.NoError(t, err)
	return c, server
}

func TestAuthorizedRequestCarriesBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	c, _ := newTestClient(t, handler)
	require.NoError(t, c.Session().Save("tok-123", nil))

	_, err := c.Technologies().ListMine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestPublicRequestOmitsToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	c, _ := newTestClient(t, handler)
	require.NoError(t, c.Session().Save("tok-123", nil))

	_, err := c.Technologies().ListPublic(context.Background(), "ada")
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "public endpoints must never carry credentials")
}

func TestUnauthorizedClearsSessionAndFiresCallbackOnce(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
	})
	c, _ := newTestClient(t, handler, WithOnUnauthorized(func() {
		calls.Add(1)
	}))
	require.NoError(t, c.Session().Save("expired", &model.User{ID: 1}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Technologies().ListMine(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "callback must fire exactly once")
	assert.Empty(t, c.Session().Token(), "session must be cleared")
}

func TestUnauthorizedCallbackRearmsAfterLogin(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fresh","token_type":"bearer"}`))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"username":"ada","email":"ada@example.com","role":"USER"}`))
	})
	mux.HandleFunc("/technologies/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
	})
	c, _ := newTestClient(t, mux, WithOnUnauthorized(func() {
		calls.Add(1)
	}))
	require.NoError(t, c.Session().Save("stale", nil))

	_, _ = c.Technologies().ListMine(context.Background())
	assert.Equal(t, int32(1), calls.Load())

	_, err := c.Auth().Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	_, _ = c.Technologies().ListMine(context.Background())
	assert.Equal(t, int32(2), calls.Load(), "callback must re-arm after a new login")
}

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ada@example.com", r.PostFormValue("username"))
		assert.Equal(t, "secret", r.PostFormValue("password"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"username":"ada","email":"ada@example.com","role":"ADMIN"}`))
	})
	c, _ := newTestClient(t, mux)

	user, err := c.Auth().Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "tok", c.Session().Token())
	require.NotNil(t, c.Session().User())
	assert.Equal(t, "ada", c.Session().User().Username)
	assert.True(t, c.Auth().IsAdmin())
}

func TestValidationArrayFlattensToFieldMessages(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[
			{"loc":["body","name"],"msg":"field required"},
			{"loc":["body","category"],"msg":"value is not a valid enumeration member"}
		]}`))
	})
	c, _ := newTestClient(t, handler)
	c.Session().Save("tok", nil)

	_, err := c.Technologies().Create(context.Background(), TechnologyRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "name: field required. category: value is not a valid enumeration member", apiErr.Message)
}

func TestBareValidationArrayBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`[{"loc":["body","url"],"msg":"invalid url"}]`))
	})
	c, _ := newTestClient(t, handler)
	c.Session().Save("tok", nil)

	_, err := c.Socials().Create(context.Background(), SocialRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "url: invalid url", apiErr.Message)
}

func TestStringDetailBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Profile not found"}`))
	})
	c, _ := newTestClient(t, handler)
	c.Session().Save("tok", nil)

	_, err := c.Profile().Me(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Profile not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
}

func TestUnparseableErrorBodyFallsBack(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})
	c, _ := newTestClient(t, handler)
	c.Session().Save("tok", nil)

	_, err := c.Clients().ListMine(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestNetworkErrorProducesAPIError(t *testing.T) {
	c, err := New("http://127.0.0.1:1", NewMemorySession())
	require.NoError(t, err)
	c.Session().Save("tok", nil)

	_, err = c.Technologies().ListMine(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestUploadImageSendsMultipartWithFolder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/upload", r.URL.Path)
		assert.Equal(t, "avatars", r.URL.Query().Get("folder"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "me.png", header.Filename)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"http://cdn.example.com/avatars/abc.png"}`))
	})
	c, _ := newTestClient(t, handler)
	c.Session().Save("tok", nil)

	url, err := c.Images().UploadImage(context.Background(), "me.png", strings.NewReader("png-bytes"), "avatars")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example.com/avatars/abc.png", url)
}

func TestCreateTechnologyDecodesResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/technologies", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"profile_id":1,"name":"Go","category":"BACKEND","icon_url":null}`))
	})
	c, _ := newTestClient(t, handler)
	c.Session().Save("tok", nil)

	tech, err := c.Technologies().Create(context.Background(), TechnologyRequest{Name: "Go", Category: "BACKEND"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), tech.ID)
	assert.Equal(t, model.TechBackend, tech.Category)
	assert.Nil(t, tech.IconURL)
}
