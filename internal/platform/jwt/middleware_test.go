package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"stock_sentiment/internal/shared/authctx"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testSecret = "test-secret-key"

func runMiddleware(secret, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/analyze/AAPL", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	AuthRequired(secret)(c)
	return w, c
}

func signed(secret string, claims jwt.MapClaims) string {
	s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return s
}

func TestAuthRequired_MissingBearerToken(t *testing.T) {
	t.Parallel()

	for _, h := range []string{"", "Basic dXNlcjpwYXNz", "bearer abc", "Bearerabc"} {
		w, c := runMiddleware(testSecret, h)
		assert.Equal(t, http.StatusUnauthorized, w.Code, h)
		assert.True(t, c.IsAborted())
		assert.JSONEq(t, `{"error":"login required"}`, w.Body.String())
	}
}

func TestAuthRequired_MissingSecret(t *testing.T) {
	t.Parallel()

	w, _ := runMiddleware("", "Bearer x")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{"sub": "u1", "iss": Issuer, "iat": now.Unix(), "exp": now.Add(time.Minute).Unix()}
	}
	noSub := valid()
	delete(noSub, "sub")
	wrongIss := valid()
	wrongIss["iss"] = "someone-else"
	expired := valid()
	expired["exp"] = now.Add(-time.Minute).Unix()
	noExp := valid()
	delete(noExp, "exp")

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, valid()).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not.a.token"},
		{"wrong secret", signed("other", valid())},
		{"expired", signed(testSecret, expired)},
		{"missing exp", signed(testSecret, noExp)},
		{"wrong issuer", signed(testSecret, wrongIss)},
		{"missing sub", signed(testSecret, noSub)},
		{"none algorithm", none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, c := runMiddleware(testSecret, "Bearer "+tt.token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Parallel()

	token, err := NewGenerator(testSecret, time.Minute).GenerateToken("u42", "alice")
	assert.NoError(t, err)

	w, c := runMiddleware(testSecret, "Bearer "+token)

	assert.False(t, c.IsAborted(), w.Body.String())
	id, ok := authctx.Get(c)
	assert.True(t, ok)
	assert.Equal(t, "u42", id.UserID)
	assert.Equal(t, "alice", id.Username)
}
