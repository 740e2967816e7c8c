package session

import (
	"errors"
	"os"
	"testing"

	"github.com/musheet/admin/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminLogin = `{"success":true,"token":"tok-9","user":{"id":7,"username":"ada","displayName":"Ada L","isAdmin":true,"avatarPath":"avatars/7.png"}}`

func openTemp(t *testing.T) (*Store, *File) {
	t.Helper()
	f := NewFile(t.TempDir())
	s, err := Open(f, nil)
	require.NoError(t, err)
	return s, f
}

func TestLoginPersistsAllFields(t *testing.T) {
	s, f := openTemp(t)

	require.NoError(t, s.Login(rpc.Interpret([]byte(adminLogin))))

	want := Session{Token: "tok-9", UserID: 7, DisplayName: "Ada L", AvatarRef: "avatars/7.png"}
	assert.Equal(t, want, s.Current())
	assert.Equal(t, "tok-9", s.Token())

	reopened, err := Open(f, nil)
	require.NoError(t, err)
	assert.Equal(t, want, reopened.Current())
}

func TestLoginFallsBackToUsername(t *testing.T) {
	s, _ := openTemp(t)
	body := `{"success":true,"token":"t","user":{"id":1,"username":"root","isAdmin":true}}`

	require.NoError(t, s.Login(rpc.Interpret([]byte(body))))
	assert.Equal(t, "root", s.Current().DisplayName)
	assert.Empty(t, s.Current().AvatarRef)
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	s, f := openTemp(t)
	body := `{"success":true,"token":"t","user":{"id":3,"username":"bob","isAdmin":false}}`

	err := s.Login(rpc.Interpret([]byte(body)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAdminRequired))
	assert.Equal(t, "Admin access required", err.Error())

	assert.False(t, s.Current().Authenticated())
	assert.True(t, s.Current().IsZero())
	_, statErr := os.Stat(f.Path())
	assert.True(t, os.IsNotExist(statErr), "nothing should be persisted")
}

func TestSignupRejectsNonAdminWithSignupText(t *testing.T) {
	s, _ := openTemp(t)
	body := `{"success":true,"token":"t","user":{"id":3,"username":"bob","isAdmin":false}}`

	err := s.Signup(rpc.Interpret([]byte(body)))
	require.ErrorIs(t, err, ErrAdminRequired)
	assert.Contains(t, err.Error(), "Only admins can access this console")
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"server message", `{"success":false,"errorMessage":"Invalid credentials"}`, "Invalid credentials"},
		{"no message", `{"success":false}`, "Login failed"},
		{"protocol error", `{"error":"boom"}`, "boom"},
		{"missing token", `{"success":true,"user":{"id":1,"isAdmin":true}}`, "Login failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := openTemp(t)
			err := s.Login(rpc.Interpret([]byte(tt.body)))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, s.Current().IsZero())
		})
	}
}

func TestFailedLoginKeepsExistingSession(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.Login(rpc.Interpret([]byte(adminLogin))))
	before := s.Current()

	err := s.Login(rpc.Interpret([]byte(`{"success":true,"token":"x","user":{"id":2,"isAdmin":false}}`)))
	require.Error(t, err)
	assert.Equal(t, before, s.Current())
}

func TestLogoutClearsEverythingAndIsIdempotent(t *testing.T) {
	s, f := openTemp(t)
	require.NoError(t, s.Login(rpc.Interpret([]byte(adminLogin))))

	require.NoError(t, s.Logout())
	assert.True(t, s.Current().IsZero())
	_, err := os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Logout())
	assert.True(t, s.Current().IsZero())

	reopened, err := Open(f, nil)
	require.NoError(t, err)
	assert.True(t, reopened.Current().IsZero())
}

func TestLogoutOnEmptySession(t *testing.T) {
	s, _ := openTemp(t)
	assert.NoError(t, s.Logout())
	assert.True(t, s.Current().IsZero())
}

func TestTokenAloneDecidesAuthentication(t *testing.T) {
	assert.False(t, Session{UserID: 5, DisplayName: "x", AvatarRef: "y"}.Authenticated())
	assert.True(t, Session{Token: "t"}.Authenticated())
}

func TestInMemoryStore(t *testing.T) {
	s, err := Open(nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Login(rpc.Interpret([]byte(adminLogin))))
	assert.True(t, s.Current().Authenticated())
	require.NoError(t, s.Logout())
	assert.False(t, s.Current().Authenticated())
}
