package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	db "github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/require"

	"openchat/auth"
	"openchat/repositories"
	"openchat/runtime"
	"openchat/search"
	"openchat/services"
)

const testPassword = "Str0ng&Secret-Pass"

// newAPIFixture wires the handlers onto real services backed by throwaway
// stores, the same assembly the server main performs.
func newAPIFixture(t *testing.T) *httptest.Server {
	t.Helper()
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	t.Cleanup(func() { db.CleanupDB(badgerDB, blugeWriter) })

	log := slog.New(slog.DiscardHandler)
	users := repositories.NewUserRepository(badgerDB)
	chats := repositories.NewChatRepository(badgerDB)
	messages := repositories.NewMessageRepository(badgerDB)
	index := search.NewUserIndex(blugeWriter)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	registry := runtime.NewRegistry()
	fanout := runtime.NewFanout(log, registry)

	authService := services.NewAuthService(users, index, tokens)
	friendService := services.NewFriendService(users)
	chatService := services.NewChatService(chats, messages, fanout, nil)

	mux := http.NewServeMux()
	NewHandlers(log, authService, friendService, chatService, users, index, tokens).Routes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	req := require.New(t)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		req.NoError(err)
		reader = bytes.NewReader(payload)
	}
	request, err := http.NewRequest(method, url, reader)
	req.NoError(err)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	req.NoError(err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		req.NoError(json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerUser(t *testing.T, server *httptest.Server, name, email string) (id, token string) {
	t.Helper()
	req := require.New(t)
	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": testPassword,
	})
	req.Equal(http.StatusCreated, resp.StatusCode)
	return body["_id"].(string), body["token"].(string)
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	req := require.New(t)
	server := newAPIFixture(t)

	id, token := registerUser(t, server, "Alice", "alice@example.com")
	req.NotEmpty(id)
	req.NotEmpty(token)

	// Duplicate email is refused
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/users", "", map[string]string{
		"name": "Other", "email": "alice@example.com", "password": testPassword,
	})
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	// Login returns a fresh token for the same account
	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/users/login", "", map[string]string{
		"email": "alice@example.com", "password": testPassword,
	})
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(id, body["_id"])
	req.NotEmpty(body["token"])

	// Wrong password is a 401
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/users/login", "", map[string]string{
		"email": "alice@example.com", "password": "Wr0ng&Secret-Pass",
	})
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_Profile(t *testing.T) {
	req := require.New(t)
	server := newAPIFixture(t)

	aliceID, aliceToken := registerUser(t, server, "Alice", "alice@example.com")
	_, bobToken := registerUser(t, server, "Bob", "bob@example.com")

	// Each caller sees their own account
	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/users/profile", aliceToken, nil)
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(aliceID, body["_id"])
	req.Equal("Alice", body["name"])
	req.Equal("alice@example.com", body["email"])

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/users/profile", bobToken, nil)
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("Bob", body["name"])
	req.NotContains(body, "token")
}

func TestAPI_AuthenticatedEndpointsRejectAnonymous(t *testing.T) {
	req := require.New(t)
	server := newAPIFixture(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/users/profile"},
		{http.MethodGet, "/api/users?search=x"},
		{http.MethodPost, "/api/users/friend-request"},
		{http.MethodPut, "/api/users/friend-request"},
		{http.MethodGet, "/api/users/friends"},
		{http.MethodPost, "/api/chats"},
	} {
		resp, _ := doJSON(t, route.method, server.URL+route.path, "", nil)
		req.Equal(http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestAPI_SearchExcludesSelf(t *testing.T) {
	req := require.New(t)
	server := newAPIFixture(t)

	_, aliceToken := registerUser(t, server, "Alice Martin", "alice@example.com")
	bobID, _ := registerUser(t, server, "Alice Bobson", "bob@example.com")

	request, err := http.NewRequest(http.MethodGet, server.URL+"/api/users?search=alice", nil)
	req.NoError(err)
	request.Header.Set("Authorization", "Bearer "+aliceToken)
	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()
	req.Equal(http.StatusOK, resp.StatusCode)

	var results []map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&results))
	req.Len(results, 1)
	req.Equal(bobID, results[0]["_id"])
}

func TestAPI_FriendRequestFlow(t *testing.T) {
	req := require.New(t)
	server := newAPIFixture(t)

	aliceID, aliceToken := registerUser(t, server, "Alice", "alice@example.com")
	_, bobToken := registerUser(t, server, "Bob", "bob@example.com")

	// Alice requests herself: rejected
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/users/friend-request", aliceToken,
		map[string]string{"userId": aliceID})
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	// Alice requests an unknown user: 404
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/users/friend-request", aliceToken,
		map[string]string{"userId": "ghost"})
	req.Equal(http.StatusNotFound, resp.StatusCode)

	// Alice requests bob
	bobID := findUserID(t, server, aliceToken, "bob")
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/users/friend-request", aliceToken,
		map[string]string{"userId": bobID})
	req.Equal(http.StatusOK, resp.StatusCode)

	// Bob sees the pending request
	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/users/friends", bobToken, nil)
	req.Equal(http.StatusOK, resp.StatusCode)
	pending := body["friendRequests"].([]any)
	req.Len(pending, 1)
	requestID := pending[0].(map[string]any)["_id"].(string)
	req.Equal(aliceID, pending[0].(map[string]any)["from"])

	// Bob accepts
	resp, _ = doJSON(t, http.MethodPut, server.URL+"/api/users/friend-request", bobToken,
		map[string]string{"requestId": requestID, "action": "accept"})
	req.Equal(http.StatusOK, resp.StatusCode)

	// Both sides now list each other
	_, body = doJSON(t, http.MethodGet, server.URL+"/api/users/friends", bobToken, nil)
	req.Equal([]any{aliceID}, body["friends"])
	_, body = doJSON(t, http.MethodGet, server.URL+"/api/users/friends", aliceToken, nil)
	req.Equal([]any{bobID}, body["friends"])

	// Accepting again is a 404, the request is gone
	resp, _ = doJSON(t, http.MethodPut, server.URL+"/api/users/friend-request", bobToken,
		map[string]string{"requestId": requestID, "action": "accept"})
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CreateChatAddsCreator(t *testing.T) {
	req := require.New(t)
	server := newAPIFixture(t)

	_, aliceToken := registerUser(t, server, "Alice", "alice@example.com")
	bobID, _ := registerUser(t, server, "Bob", "bob@example.com")

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/chats", aliceToken, map[string]any{
		"name":    "plans",
		"isGroup": false,
		"members": []string{bobID},
	})
	req.Equal(http.StatusCreated, resp.StatusCode)
	req.NotEmpty(body["_id"])
	req.Equal("plans", body["name"])
}

func findUserID(t *testing.T, server *httptest.Server, token, keyword string) string {
	t.Helper()
	req := require.New(t)
	request, err := http.NewRequest(http.MethodGet, server.URL+"/api/users?search="+keyword, nil)
	req.NoError(err)
	request.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	var results []map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&results))
	req.NotEmpty(results)
	return results[0]["_id"].(string)
}
