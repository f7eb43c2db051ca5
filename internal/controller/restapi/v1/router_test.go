package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vcardqr/internal/dto"
	"vcardqr/internal/entity"
	"vcardqr/pkg/types/errs"
)

type fakeCardUseCase struct {
	encoded *entity.EncodedCard
	err     error
	got     dto.Card
}

func (f *fakeCardUseCase) GenerateCard(_ context.Context, card dto.Card) (*entity.EncodedCard, error) {
	f.got = card
	if f.err != nil {
		return nil, f.err
	}
	return f.encoded, nil
}

func (f *fakeCardUseCase) GetCard(_ context.Context, _ uuid.UUID) (*entity.EncodedCard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.encoded, nil
}

func (f *fakeCardUseCase) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeCardUseCase) MarkAsProcessingBatch(context.Context, []*entity.OutboxEvent) error {
	return nil
}
func (f *fakeCardUseCase) MarkAsProcessedBatch(context.Context, []*entity.OutboxEvent) error {
	return nil
}
func (f *fakeCardUseCase) IncrementRetryCountBatch(context.Context, []*entity.OutboxEvent) error {
	return nil
}
func (f *fakeCardUseCase) MarkMaxRetriesAsFailed(context.Context, int) error { return nil }
func (f *fakeCardUseCase) CleanupOutbox(context.Context) error               { return nil }

type fakeUserUseCase struct {
	token   string
	authErr error
	claims  *entity.TokenClaims
	user    *entity.User

	deletedActor uuid.UUID
	deletedID    uuid.UUID
	deleteErr    error
}

func (f *fakeUserUseCase) EnsureDefaultAdmin(context.Context) error { return nil }

func (f *fakeUserUseCase) Authenticate(_ context.Context, _, _ string) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return f.token, nil
}

func (f *fakeUserUseCase) ParseToken(token string) (*entity.TokenClaims, error) {
	if token != f.token || f.claims == nil {
		return nil, errs.ErrInvalidCredentials
	}
	return f.claims, nil
}

func (f *fakeUserUseCase) GetByID(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	if f.user == nil {
		return nil, errs.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeUserUseCase) ChangePassword(context.Context, uuid.UUID, string, string) error {
	return nil
}

func (f *fakeUserUseCase) ListUsers(context.Context) ([]*entity.User, error) {
	return []*entity.User{f.user}, nil
}

func (f *fakeUserUseCase) CreateUser(_ context.Context, username, _ string, isAdmin bool) (*entity.User, error) {
	return &entity.User{ID: uuid.New(), Username: username, IsAdmin: isAdmin}, nil
}

func (f *fakeUserUseCase) UpdateUser(context.Context, uuid.UUID, string, string, bool) error {
	return nil
}

func (f *fakeUserUseCase) DeleteUser(_ context.Context, actorID, id uuid.UUID) error {
	f.deletedActor = actorID
	f.deletedID = id
	return f.deleteErr
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})       {}
func (nopLogger) Warn(string, ...interface{})       {}
func (nopLogger) Error(interface{}, ...interface{}) {}
func (nopLogger) Fatal(interface{}, ...interface{}) {}

func newTestApp(card *fakeCardUseCase, user *fakeUserUseCase) *fiber.App {
	app := fiber.New()
	NewRoutes(app.Group("/v1"), card, user, nopLogger{})
	return app
}

func jsonRequest(method, target string, body interface{}, token string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func adminUser() (*fakeUserUseCase, *entity.User) {
	u := &entity.User{ID: uuid.New(), Username: "admin", IsAdmin: true}
	return &fakeUserUseCase{
		token:  "valid-token",
		claims: &entity.TokenClaims{UserID: u.ID, Username: u.Username, IsAdmin: true},
		user:   u,
	}, u
}

func TestLogin(t *testing.T) {
	user, _ := adminUser()
	app := newTestApp(&fakeCardUseCase{}, user)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/v1/auth/login",
		map[string]string{"username": "admin", "password": "admin"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "valid-token", body["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := newTestApp(&fakeCardUseCase{}, &fakeUserUseCase{authErr: errs.ErrInvalidCredentials})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/v1/auth/login",
		map[string]string{"username": "admin", "password": "wrong"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_MissingFields(t *testing.T) {
	app := newTestApp(&fakeCardUseCase{}, &fakeUserUseCase{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/v1/auth/login",
		map[string]string{"username": "admin"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateCard(t *testing.T) {
	user, _ := adminUser()
	card := &fakeCardUseCase{encoded: &entity.EncodedCard{DataURI: "data:image/png;base64,aGk="}}
	app := newTestApp(card, user)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/v1/cards",
		map[string]string{"first_name": "John", "last_name": "Doe", "color": "CC0000"}, "valid-token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "data:image/png;base64,aGk=", body["image"])

	require.Equal(t, "John", card.got.FirstName)
	require.Equal(t, "CC0000", card.got.Color)
}

func TestGenerateCard_Unauthorized(t *testing.T) {
	user, _ := adminUser()
	app := newTestApp(&fakeCardUseCase{}, user)

	for _, token := range []string{"", "wrong-token"} {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/v1/cards",
			map[string]string{"first_name": "John", "last_name": "Doe"}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestGenerateCard_MissingName(t *testing.T) {
	user, _ := adminUser()
	app := newTestApp(&fakeCardUseCase{}, user)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/v1/cards",
		map[string]string{"first_name": "John"}, "valid-token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateCard_PayloadTooLarge(t *testing.T) {
	user, _ := adminUser()
	card := &fakeCardUseCase{err: errors.Join(errs.ErrPayloadTooLarge, errors.New("content too long"))}
	app := newTestApp(card, user)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/v1/cards",
		map[string]string{"first_name": "John", "last_name": "Doe"}, "valid-token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestGetCard_NotFound(t *testing.T) {
	user, _ := adminUser()
	card := &fakeCardUseCase{err: errs.ErrRecordNotFound}
	app := newTestApp(card, user)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/v1/cards/"+uuid.NewString(), nil, "valid-token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsers_AdminGate(t *testing.T) {
	user := &fakeUserUseCase{
		token:  "valid-token",
		claims: &entity.TokenClaims{UserID: uuid.New(), Username: "bob", IsAdmin: false},
	}
	app := newTestApp(&fakeCardUseCase{}, user)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/v1/users", nil, "valid-token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeleteUser_Self(t *testing.T) {
	user, admin := adminUser()
	user.deleteErr = errs.ErrSelfDelete
	app := newTestApp(&fakeCardUseCase{}, user)

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/v1/users/"+admin.ID.String(), nil, "valid-token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, admin.ID, user.deletedActor)
	require.Equal(t, admin.ID, user.deletedID)
}

func TestMe(t *testing.T) {
	user, admin := adminUser()
	app := newTestApp(&fakeCardUseCase{}, user)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/v1/auth/me", nil, "valid-token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, admin.ID.String(), body["id"])
	require.Equal(t, "admin", body["username"])
}

func TestShowUI(t *testing.T) {
	user, _ := adminUser()
	app := newTestApp(&fakeCardUseCase{}, user)

	for _, target := range []string{"/v1/", "/v1/login"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "<form")
	}
}
