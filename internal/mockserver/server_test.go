package mockserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/musheet/admin/internal/avatar"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(nil, WithBcryptCost(bcrypt.MinCost))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, ts *httptest.Server, endpoint, token string, body map[string]any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/"+endpoint, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestFirstRegistrationBecomesAdmin(t *testing.T) {
	_, ts := newTestServer(t)

	_, out := post(t, ts, "auth", "", map[string]any{"method": "register", "username": "root", "password": "secret1"})
	require.Equal(t, true, out["success"])
	assert.Equal(t, true, out["user"].(map[string]any)["isAdmin"])

	_, out = post(t, ts, "auth", "", map[string]any{"method": "register", "username": "bob", "password": "secret1"})
	require.Equal(t, true, out["success"])
	assert.Equal(t, false, out["user"].(map[string]any)["isAdmin"])
}

func TestLoginFailureShape(t *testing.T) {
	_, ts := newTestServer(t)

	status, out := post(t, ts, "auth", "", map[string]any{"method": "login", "username": "nobody", "password": "x"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, errBadLogin.Error(), out["errorMessage"])
}

func TestUnauthorizedUsesExceptionShape(t *testing.T) {
	_, ts := newTestServer(t)

	status, out := post(t, ts, "admin", "bogus", map[string]any{"method": "getAllUsers"})
	assert.Equal(t, http.StatusUnauthorized, status)
	exc, ok := out["exception"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Not authorized", exc["message"])
}

func TestUnknownMethod(t *testing.T) {
	_, ts := newTestServer(t)

	status, out := post(t, ts, "admin", "", map[string]any{"method": "launchRockets"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, out["error"], "launchRockets")
}

func TestAdminCannotModifySelf(t *testing.T) {
	_, ts := newTestServer(t)
	_, out := post(t, ts, "auth", "", map[string]any{"method": "register", "username": "root", "password": "secret1"})
	token := out["token"].(string)
	id := out["user"].(map[string]any)["id"]

	_, out = post(t, ts, "admin", token, map[string]any{"method": "deactivateUser", "targetUserId": id})
	assert.Equal(t, errSelf.Error(), out["error"])
}

func TestSeedAndAvatar(t *testing.T) {
	s, ts := newTestServer(t)
	require.NoError(t, s.Seed(SeedOptions{AdminUsername: "admin", AdminPassword: "admin123", Users: 6, Teams: 2}))

	_, out := post(t, ts, "auth", "", map[string]any{"method": "login", "username": "admin", "password": "admin123"})
	require.Equal(t, true, out["success"])
	token := out["token"].(string)

	// user 2 is the first demo user and always has an avatar.
	raw, err := json.Marshal(map[string]any{"method": "getAvatar", "userId": 2})
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/profile", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	data, ok := avatar.Decode(env)
	require.True(t, ok)
	assert.Equal(t, "image/png", http.DetectContentType(data))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		n, page, size int
		start, end    int
	}{
		{n: 45, page: 0, size: 20, start: 0, end: 20},
		{n: 45, page: 2, size: 20, start: 40, end: 45},
		{n: 45, page: 5, size: 20, start: 45, end: 45},
		{n: 10, page: -1, size: 0, start: 0, end: 10},
	}
	for _, tt := range tests {
		start, end := page(tt.n, tt.page, tt.size)
		if start != tt.start || end != tt.end {
			t.Errorf("page(%d, %d, %d) = %d, %d; want %d, %d", tt.n, tt.page, tt.size, start, end, tt.start, tt.end)
		}
	}
}
