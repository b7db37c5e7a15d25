package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhaven/taskhaven-go/internal/crypto"
	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/store/memory"
)

const testSecret = "test-secret"

func setupAuth(t *testing.T) (*memory.Store, *model.User, http.Handler) {
	t.Helper()

	st := memory.NewStore()
	user := &model.User{Email: "a@x.com", Name: "Ann", PasswordHash: "hash"}
	require.NoError(t, st.CreateUser(context.Background(), user))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		require.True(t, ok, "user missing from context")
		w.Write([]byte(u.ID))
	})

	return st, user, Authenticate(testSecret, st)(inner)
}

func doRequest(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/rpc/auth.me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestAuthenticateSuccess(t *testing.T) {
	_, user, h := setupAuth(t)

	token, err := crypto.GenerateToken(user.ID, user.Email, testSecret, time.Hour)
	require.NoError(t, err)

	rec := doRequest(h, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, rec.Body.String())
}

func TestAuthenticateMissingHeader(t *testing.T) {
	_, _, h := setupAuth(t)

	rec := doRequest(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_CREDENTIALS", errorCode(t, rec))
}

func TestAuthenticateBadScheme(t *testing.T) {
	_, user, h := setupAuth(t)

	token, err := crypto.GenerateToken(user.ID, user.Email, testSecret, time.Hour)
	require.NoError(t, err)

	rec := doRequest(h, "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_CREDENTIALS", errorCode(t, rec))
}

func TestAuthenticateMalformedToken(t *testing.T) {
	_, _, h := setupAuth(t)

	rec := doRequest(h, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MALFORMED_TOKEN", errorCode(t, rec))
}

func TestAuthenticateExpiredToken(t *testing.T) {
	_, user, h := setupAuth(t)

	token, err := crypto.GenerateToken(user.ID, user.Email, testSecret, -time.Minute)
	require.NoError(t, err)

	rec := doRequest(h, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "EXPIRED_TOKEN", errorCode(t, rec))
}

func TestAuthenticateWrongSecret(t *testing.T) {
	_, user, h := setupAuth(t)

	token, err := crypto.GenerateToken(user.ID, user.Email, "other-secret", time.Hour)
	require.NoError(t, err)

	rec := doRequest(h, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, rec))
}

func TestAuthenticateDeletedUser(t *testing.T) {
	st, user, h := setupAuth(t)

	token, err := crypto.GenerateToken(user.ID, user.Email, testSecret, time.Hour)
	require.NoError(t, err)

	// The token outlives the account.
	st.DeleteUser(context.Background(), user.ID)

	rec := doRequest(h, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}
