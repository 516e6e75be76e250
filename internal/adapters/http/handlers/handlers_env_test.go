package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskfolio/taskfolio/internal/adapters/http/dto"
	"github.com/taskfolio/taskfolio/internal/adapters/http/handlers"
	"github.com/taskfolio/taskfolio/internal/app/suggestions"
	"github.com/taskfolio/taskfolio/internal/app/todolists"
	"github.com/taskfolio/taskfolio/internal/app/users"
	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/platform/clock"
	"github.com/taskfolio/taskfolio/internal/platform/config"
	"github.com/taskfolio/taskfolio/internal/testutil"
)

// env wires the real application services and bus over in-memory fakes, so
// handler tests exercise the full decode-dispatch-respond path.
type env struct {
	users   *handlers.UserHandler
	lists   *handlers.ToDoListHandler
	suggest *handlers.SuggestionHandler

	userRepo *testutil.UserRepo
	listRepo *testutil.ToDoListRepo
	ai       *testutil.CompletionClient
	clk      *clock.Fixed
}

func newEnv(t *testing.T) *env {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	b := bus.New(logger)
	clk := clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	userRepo := testutil.NewUserRepo()
	listRepo := testutil.NewToDoListRepo()
	ai := &testutil.CompletionClient{}

	users.Register(b, users.NewService(userRepo, b, clk, logger))
	todolists.Register(b, todolists.NewService(listRepo, b, clk, logger))
	suggestions.Register(b, suggestions.NewService(ai, b, logger))

	paging := config.PaginationConfig{DefaultLimit: 20, MaxLimit: 100}

	return &env{
		users:    handlers.NewUserHandler(b, paging),
		lists:    handlers.NewToDoListHandler(b, paging),
		suggest:  handlers.NewSuggestionHandler(b),
		userRepo: userRepo,
		listRepo: listRepo,
		ai:       ai,
		clk:      clk,
	}
}

// do runs one handler func against a synthetic request. params become chi
// URL parameters; an empty owner leaves the X-User-ID header unset.
func do(handler http.HandlerFunc, method, target, owner, body string, params map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if owner != "" {
		req.Header.Set("X-User-ID", owner)
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal response: %v (body: %s)", err, rec.Body.String())
	}
	return v
}

// registerUser creates a user through the handler and returns its ID.
func (e *env) registerUser(t *testing.T, email, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"user_name":%q}`, email, name)
	rec := do(e.users.Register, http.MethodPost, "/api/v1/users", "", body, nil)
	requireStatus(t, rec, http.StatusCreated)
	return decodeJSON[dto.UserResponse](t, rec).ID
}

// createList creates a list for owner and returns the detail response.
func (e *env) createList(t *testing.T, owner, title string) dto.ListDetailResponse {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q}`, title)
	rec := do(e.lists.CreateList, http.MethodPost, "/api/v1/todolists", owner, body, nil)
	requireStatus(t, rec, http.StatusCreated)
	return decodeJSON[dto.ListDetailResponse](t, rec)
}

// addItem adds one todo to a list and returns the item response.
func (e *env) addItem(t *testing.T, owner, listID, title string) dto.TodoItemResponse {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q}`, title)
	rec := do(e.lists.AddItem, http.MethodPost, "/api/v1/todolists/"+listID+"/items",
		owner, body, map[string]string{"listId": listID})
	requireStatus(t, rec, http.StatusCreated)
	return decodeJSON[dto.TodoItemResponse](t, rec)
}
