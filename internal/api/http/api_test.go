package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/http"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/http/handlers"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/auth"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/config"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/events"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/observability"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/persistence"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository/memory"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/service"
)

var jwtShape = regexp.MustCompile(`^[A-Za-z0-9\-_]*\.[A-Za-z0-9\-_]*\.[A-Za-z0-9\-_]*$`)

type testEnv struct {
	app     *fiber.App
	authSvc *service.AuthService
	users   repository.UserRepository
	metrics *observability.Metrics
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{Name: "jwt-pizza-service", Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	users := memory.NewUserRepository()
	franchises := memory.NewFranchiseRepository()
	menu := memory.NewMenuRepository()
	orders := memory.NewOrderRepository()
	tokens := repository.NewTokenRepository(redisClient)
	dispatcher := events.NewInMemoryDispatcher()

	authSvc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   users,
		TokenRepo:  tokens,
		Dispatcher: dispatcher,
	})
	franchiseSvc := service.NewFranchiseService(franchises, users, dispatcher)
	orderSvc := service.NewOrderService(menu, orders, franchises, authSvc.TokenManager(), dispatcher)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, &persistence.Postgres{}, &persistence.Redis{Client: redisClient}),
		Docs:           handlers.NewDocsHandler(cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authSvc),
		Franchise:      handlers.NewFranchiseHandler(franchiseSvc),
		Order:          handlers.NewOrderHandler(orderSvc),
		AuthMiddleware: auth.NewAuthMiddleware(authSvc.TokenManager(), users, tokens),
	})

	return &testEnv{app: app, authSvc: authSvc, users: users, metrics: metrics}
}

func randomName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, out))
	}
	return resp.StatusCode
}

func (e *testEnv) registerDiner(t *testing.T) (map[string]any, string, string) {
	t.Helper()

	email := randomName() + "@test.com"
	var body map[string]any
	status := e.request(t, http.MethodPost, "/api/auth", "", map[string]any{
		"name": "pizza diner", "email": email, "password": "a",
	}, &body)
	require.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	require.Regexp(t, jwtShape, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	return user, token, email
}

// loginAdmin seeds an admin account and logs it in through the API.
func (e *testEnv) loginAdmin(t *testing.T) (map[string]any, string, string) {
	t.Helper()

	name := randomName()
	email := name + "@admin.com"
	require.NoError(t, e.authSvc.EnsureDefaultAdmin(context.Background(), name, email, "toomanysecrets"))

	var body map[string]any
	status := e.request(t, http.MethodPut, "/api/auth", "", map[string]any{
		"email": email, "password": "toomanysecrets",
	}, &body)
	require.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	require.Regexp(t, jwtShape, token)
	user, _ := body["user"].(map[string]any)
	return user, token, email
}

func (e *testEnv) createFranchise(t *testing.T, adminToken, adminEmail string) map[string]any {
	t.Helper()

	var created map[string]any
	status := e.request(t, http.MethodPost, "/api/franchise", adminToken, map[string]any{
		"name":   randomName(),
		"admins": []map[string]any{{"email": adminEmail}},
		"stores": []any{},
	}, &created)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, created["id"])
	return created
}

func TestRegister(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	user, _, email := env.registerDiner(t)
	require.Equal(t, "pizza diner", user["name"])
	require.Equal(t, email, user["email"])
	require.NotContains(t, user, "password")
	require.Equal(t, []any{map[string]any{"role": "diner"}}, user["roles"])
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	var body map[string]any
	status := env.request(t, http.MethodPost, "/api/auth", "", map[string]any{"name": "no creds"}, &body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "name, email, and password are required", body["message"])
}

func TestLogin(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	registered, _, email := env.registerDiner(t)

	var body map[string]any
	status := env.request(t, http.MethodPut, "/api/auth", "", map[string]any{
		"email": email, "password": "a",
	}, &body)
	require.Equal(t, http.StatusOK, status)

	user, _ := body["user"].(map[string]any)
	require.Equal(t, registered["id"], user["id"])
	require.Equal(t, registered["name"], user["name"])
	require.Equal(t, email, user["email"])
	require.NotContains(t, user, "password")
	require.Equal(t, []any{map[string]any{"role": "diner"}}, user["roles"])
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, _, email := env.registerDiner(t)

	var body map[string]any
	status := env.request(t, http.MethodPut, "/api/auth", "", map[string]any{
		"email": email, "password": "wrong",
	}, &body)
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotEmpty(t, body["message"])
}

func TestUpdateUser_NoToken(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	user, _, email := env.registerDiner(t)

	var body map[string]any
	status := env.request(t, http.MethodPut, "/api/auth/"+user["id"].(string), "", map[string]any{
		"name": "pizza diner", "email": email, "password": "a",
	}, &body)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthorized", body["message"])
}

func TestLogout(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, token, email := env.registerDiner(t)

	var body map[string]any
	status := env.request(t, http.MethodDelete, "/api/auth", token, nil, &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "logout successful", body["message"])

	// The revoked token no longer authenticates.
	var rejected map[string]any
	status = env.request(t, http.MethodGet, "/api/order", token, nil, &rejected)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthorized", rejected["message"])

	// Logging in again issues a fresh, working token.
	var relogin map[string]any
	status = env.request(t, http.MethodPut, "/api/auth", "", map[string]any{
		"email": email, "password": "a",
	}, &relogin)
	require.Equal(t, http.StatusOK, status)
	newToken, _ := relogin["token"].(string)
	require.Regexp(t, jwtShape, newToken)
	require.NotEqual(t, token, newToken)

	status = env.request(t, http.MethodGet, "/api/order", newToken, nil, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestUpdateUser_Self(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	user, token, _ := env.registerDiner(t)

	newEmail := randomName() + "@test.com"
	newPassword := randomName()

	var updated map[string]any
	status := env.request(t, http.MethodPut, "/api/auth/"+user["id"].(string), token, map[string]any{
		"name": "pizza diner", "email": newEmail, "password": newPassword,
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, user["id"], updated["id"])
	require.Equal(t, newEmail, updated["email"])
	require.NotContains(t, updated, "password")
	require.Equal(t, []any{map[string]any{"role": "diner"}}, updated["roles"])

	// New credentials work without re-login being required first.
	status = env.request(t, http.MethodPut, "/api/auth", "", map[string]any{
		"email": newEmail, "password": newPassword,
	}, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestGetAllFranchises(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, adminToken, adminEmail := env.loginAdmin(t)

	franchise1 := env.createFranchise(t, adminToken, adminEmail)
	franchise2 := env.createFranchise(t, adminToken, adminEmail)

	var all []map[string]any
	status := env.request(t, http.MethodGet, "/api/franchise", "", nil, &all)
	require.Equal(t, http.StatusOK, status)

	found := map[string]map[string]any{}
	for _, item := range all {
		require.NotContains(t, item, "admins")
		found[item["id"].(string)] = item
	}
	for _, created := range []map[string]any{franchise1, franchise2} {
		item, ok := found[created["id"].(string)]
		require.True(t, ok)
		require.Equal(t, created["name"], item["name"])
		require.Equal(t, created["stores"], item["stores"])
	}
}

func TestGetUserFranchises(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	admin, adminToken, adminEmail := env.loginAdmin(t)

	franchise1 := env.createFranchise(t, adminToken, adminEmail)
	franchise2 := env.createFranchise(t, adminToken, adminEmail)

	var owned []map[string]any
	status := env.request(t, http.MethodGet, "/api/franchise/"+admin["id"].(string), adminToken, nil, &owned)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, owned, 2)

	ids := []string{owned[0]["id"].(string), owned[1]["id"].(string)}
	require.ElementsMatch(t, []string{franchise1["id"].(string), franchise2["id"].(string)}, ids)

	for _, item := range owned {
		admins, ok := item["admins"].([]any)
		require.True(t, ok)
		require.Len(t, admins, 1)
		entry := admins[0].(map[string]any)
		require.Equal(t, admin["id"], entry["id"])
		require.Equal(t, adminEmail, entry["email"])
		require.NotContains(t, entry, "password")
		require.NotContains(t, entry, "roles")
	}
}

func TestGetUserFranchises_OtherUserEmpty(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	admin, adminToken, adminEmail := env.loginAdmin(t)
	env.createFranchise(t, adminToken, adminEmail)

	_, dinerToken, _ := env.registerDiner(t)

	var owned []map[string]any
	status := env.request(t, http.MethodGet, "/api/franchise/"+admin["id"].(string), dinerToken, nil, &owned)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, owned)
}

func TestCreateFranchise_RequiresAdmin(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, dinerToken, _ := env.registerDiner(t)

	var body map[string]any
	status := env.request(t, http.MethodPost, "/api/franchise", dinerToken, map[string]any{
		"name": randomName(), "admins": []any{},
	}, &body)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "unable to create a franchise", body["message"])

	status = env.request(t, http.MethodPost, "/api/franchise", "", map[string]any{"name": randomName()}, &body)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthorized", body["message"])
}

func TestDeleteFranchise(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, adminToken, adminEmail := env.loginAdmin(t)

	doomed := env.createFranchise(t, adminToken, adminEmail)
	sibling := env.createFranchise(t, adminToken, adminEmail)

	var body map[string]any
	status := env.request(t, http.MethodDelete, "/api/franchise/"+doomed["id"].(string), adminToken, nil, &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "franchise deleted", body["message"])

	var all []map[string]any
	status = env.request(t, http.MethodGet, "/api/franchise", "", nil, &all)
	require.Equal(t, http.StatusOK, status)

	ids := make([]string, 0, len(all))
	for _, item := range all {
		ids = append(ids, item["id"].(string))
	}
	require.NotContains(t, ids, doomed["id"].(string))
	require.Contains(t, ids, sibling["id"].(string))

	// Deleting an unknown franchise reports not found.
	status = env.request(t, http.MethodDelete, "/api/franchise/"+doomed["id"].(string), adminToken, nil, &body)
	require.Equal(t, http.StatusNotFound, status)
}

func TestAddMenuItem(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, adminToken, _ := env.loginAdmin(t)

	first := map[string]any{
		"title": randomName(), "description": randomName(), "image": randomName(), "price": 0.05,
	}
	var menu []map[string]any
	status := env.request(t, http.MethodPut, "/api/order/menu", adminToken, first, &menu)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, menu, 1)

	second := map[string]any{
		"title": randomName(), "description": randomName(), "image": randomName(), "price": 0.42,
	}
	status = env.request(t, http.MethodPut, "/api/order/menu", adminToken, second, &menu)
	require.Equal(t, http.StatusOK, status)

	matches := 0
	for _, item := range menu {
		if item["title"] == second["title"] && item["description"] == second["description"] &&
			item["image"] == second["image"] && item["price"] == second["price"] {
			matches++
		}
	}
	require.Equal(t, 1, matches)

	// Previously added items remain present.
	titles := make([]string, 0, len(menu))
	for _, item := range menu {
		titles = append(titles, item["title"].(string))
	}
	require.Contains(t, titles, first["title"])
}

func TestAddMenuItem_RequiresAdmin(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, dinerToken, _ := env.registerDiner(t)

	var body map[string]any
	status := env.request(t, http.MethodPut, "/api/order/menu", dinerToken, map[string]any{
		"title": "Student", "description": "No topping, no sauce", "image": "pizza9.png", "price": 0.0001,
	}, &body)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "unable to add menu item", body["message"])
}

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, adminToken, adminEmail := env.loginAdmin(t)
	franchise := env.createFranchise(t, adminToken, adminEmail)
	franchiseID := franchise["id"].(string)

	var store map[string]any
	status := env.request(t, http.MethodPost, "/api/franchise/"+franchiseID+"/store", adminToken, map[string]any{
		"name": "SLC",
	}, &store)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, store["id"])
	require.Equal(t, "SLC", store["name"])

	var all []map[string]any
	status = env.request(t, http.MethodGet, "/api/franchise", "", nil, &all)
	require.Equal(t, http.StatusOK, status)
	for _, item := range all {
		if item["id"] == franchiseID {
			stores := item["stores"].([]any)
			require.Len(t, stores, 1)
		}
	}

	var body map[string]any
	status = env.request(t, http.MethodDelete, "/api/franchise/"+franchiseID+"/store/"+store["id"].(string), adminToken, nil, &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "store deleted", body["message"])
}

func TestOrderFlow(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)
	_, adminToken, adminEmail := env.loginAdmin(t)

	franchise := env.createFranchise(t, adminToken, adminEmail)
	franchiseID := franchise["id"].(string)

	var store map[string]any
	status := env.request(t, http.MethodPost, "/api/franchise/"+franchiseID+"/store", adminToken, map[string]any{
		"name": "SLC",
	}, &store)
	require.Equal(t, http.StatusOK, status)

	var menu []map[string]any
	status = env.request(t, http.MethodPut, "/api/order/menu", adminToken, map[string]any{
		"title": "Veggie", "description": "A garden of delight", "image": "pizza1.png", "price": 0.05,
	}, &menu)
	require.Equal(t, http.StatusOK, status)

	diner, dinerToken, _ := env.registerDiner(t)

	var created map[string]any
	status = env.request(t, http.MethodPost, "/api/order", dinerToken, map[string]any{
		"franchiseId": franchiseID,
		"storeId":     store["id"],
		"items": []map[string]any{
			{"menuId": menu[0]["id"], "description": "Veggie", "price": 0.05},
		},
	}, &created)
	require.Equal(t, http.StatusOK, status)

	receipt, _ := created["jwt"].(string)
	require.Regexp(t, jwtShape, receipt)
	order, _ := created["order"].(map[string]any)
	require.NotEmpty(t, order["id"])
	require.Equal(t, franchiseID, order["franchiseId"])

	var list map[string]any
	status = env.request(t, http.MethodGet, "/api/order", dinerToken, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, diner["id"], list["dinerId"])
	orders, _ := list["orders"].([]any)
	require.Len(t, orders, 1)
}

func TestRequestMetrics_RecordMappedStatus(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	status := env.request(t, http.MethodGet, "/api/order", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// The request counter carries the status written to the response, not
	// the pre-error-mapping default.
	require.Equal(t, int64(1), env.metrics.RequestTotal("/api/order", http.MethodGet, http.StatusUnauthorized))
	require.Equal(t, int64(0), env.metrics.RequestTotal("/api/order", http.MethodGet, http.StatusOK))

	status = env.request(t, http.MethodGet, "/health/live", "", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), env.metrics.RequestTotal("/health/live", http.MethodGet, http.StatusOK))
}

func TestDocsAndHealth(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	var docs map[string]any
	status := env.request(t, http.MethodGet, "/api/docs", "", nil, &docs)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, docs["endpoints"])

	status = env.request(t, http.MethodGet, "/health/live", "", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = env.request(t, http.MethodGet, "/health/ready", "", nil, nil)
	require.Equal(t, http.StatusOK, status)
}
