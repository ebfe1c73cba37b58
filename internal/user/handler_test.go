// File: internal/user/handler_test.go
package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"thrive_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupUserHandlerTest(t *testing.T) (*gin.Engine, *fakeUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepository()
	handler := NewHandler(newTestService(repo), zap.NewNop())

	// Stand-in for the session middleware chain: /me is guarded elsewhere.
	passthroughAuth := func(c *gin.Context) { c.Next() }

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1, passthroughAuth)
	return router, repo
}

func postRegister(router *gin.Engine, payload gin.H) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpointCreatesUser(t *testing.T) {
	router, repo := setupUserHandlerTest(t)

	w := postRegister(router, gin.H{"email": "casey@example.com", "password": "Abcdefg1!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data struct {
			User  UserResponse `json:"user"`
			Token struct {
				AccessToken string `json:"access_token"`
			} `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "casey@example.com", body.Data.User.Email)
	assert.NotEqual(t, uuid.Nil, body.Data.User.ID)
	assert.NotEmpty(t, body.Data.Token.AccessToken, "registration establishes a session immediately")
	assert.NotContains(t, w.Body.String(), "password", "no password material may leave the API")

	_, exists := repo.byEmail["casey@example.com"]
	assert.True(t, exists)
}

func TestRegisterEndpointRejectsWeakPassword(t *testing.T) {
	router, _ := setupUserHandlerTest(t)

	w := postRegister(router, gin.H{"email": "casey@example.com", "password": "abcdefg"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "WEAK_PASSWORD")
	assert.Contains(t, w.Body.String(), "uppercase")
}

func TestRegisterEndpointRejectsDuplicate(t *testing.T) {
	router, _ := setupUserHandlerTest(t)

	first := postRegister(router, gin.H{"email": "casey@example.com", "password": "Abcdefg1!"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postRegister(router, gin.H{"email": "casey@example.com", "password": "Abcdefg1!"})
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), common.ErrConflict.Code)
}

func TestRegisterEndpointRejectsMalformedEmail(t *testing.T) {
	router, _ := setupUserHandlerTest(t)

	w := postRegister(router, gin.H{"email": "not-an-email", "password": "Abcdefg1!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
