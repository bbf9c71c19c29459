package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/service/jwt"
	"github.com/tilalcrm/tilal/internal/service/password"
	"github.com/tilalcrm/tilal/internal/usecase"
)

type stubUserRepo struct {
	user *domain.User
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, domain.NewNotFoundError("user", username)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, domain.NewNotFoundError("user", id)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.user = user
	return nil
}

type countingLimiter struct {
	counts map[string]int
}

func (l *countingLimiter) CheckLimit(_ context.Context, key string, limit int) (bool, error) {
	return l.counts[key] < limit, nil
}

func (l *countingLimiter) Increment(_ context.Context, key string) error {
	l.counts[key]++
	return nil
}

func newAuthRouter(t *testing.T, attempts int) *mux.Router {
	t.Helper()
	passwordService := password.NewBcryptPasswordService(4)
	hash, err := passwordService.HashPassword("s3cret")
	require.NoError(t, err)

	repo := &stubUserRepo{user: &domain.User{ID: "u-1", Username: "sara", PasswordHash: hash, Name: "Sara", Role: "admin"}}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	uc := usecase.NewAuthUseCase(
		repo,
		passwordService,
		jwt.NewJWTService("test-secret", time.Hour),
		&countingLimiter{counts: map[string]int{}},
		attempts,
		logger,
	)

	router := mux.NewRouter()
	NewAuthHandler(uc).RegisterRoutes(router)
	return router
}

func TestLoginEndpoint(t *testing.T) {
	router := newAuthRouter(t, 5)

	rr := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"username": "sara",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	env := decodeEnvelope(t, rr)
	require.True(t, env.Status)
	data := env.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Sara", user["name"])
	assert.NotContains(t, user, "password_hash")
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	router := newAuthRouter(t, 5)

	rr := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"username": "sara",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.False(t, env.Status)
}

func TestLoginEndpointRateLimited(t *testing.T) {
	router := newAuthRouter(t, 1)

	rr := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"username": "sara",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"username": "sara",
		"password": "s3cret",
	})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestLoginEndpointMissingFields(t *testing.T) {
	router := newAuthRouter(t, 5)

	rr := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{"username": "sara"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
