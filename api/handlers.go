// Package api exposes the account and social-graph endpoints. The real-time
// surface lives in package ws; everything here is plain request/response.
package api

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"openchat/domain"
	"openchat/errors"
	"openchat/repositories"
	"openchat/search"
	"openchat/services"
	"openchat/ws"
)

type Handlers struct {
	log     *slog.Logger
	auth    services.IAuthService
	friends services.IFriendService
	chats   services.IChatService
	users   repositories.IUserRepository
	index   *search.UserIndex
	tokens  ws.TokenVerifier
}

func NewHandlers(
	log *slog.Logger,
	auth services.IAuthService,
	friends services.IFriendService,
	chats services.IChatService,
	users repositories.IUserRepository,
	index *search.UserIndex,
	tokens ws.TokenVerifier,
) *Handlers {
	return &Handlers{log: log, auth: auth, friends: friends, chats: chats, users: users, index: index, tokens: tokens}
}

// Routes wires every endpoint onto a fresh mux. The websocket gateway is
// mounted by the caller alongside these.
func (h *Handlers) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.register)
	mux.HandleFunc("POST /api/users/login", h.login)
	mux.HandleFunc("GET /api/users/profile", h.requireAuth(h.profile))
	mux.HandleFunc("GET /api/users", h.requireAuth(h.searchUsers))
	mux.HandleFunc("POST /api/users/friend-request", h.requireAuth(h.sendFriendRequest))
	mux.HandleFunc("PUT /api/users/friend-request", h.requireAuth(h.respondFriendRequest))
	mux.HandleFunc("GET /api/users/friends", h.requireAuth(h.listFriends))
	mux.HandleFunc("POST /api/chats", h.requireAuth(h.createChat))
}

type authedHandler func(w http.ResponseWriter, r *http.Request, userID domain.UserID)

// requireAuth resolves the caller's identity from the Bearer token.
func (h *Handlers) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, err := h.tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r, userID)
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, user, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{
		ID:    string(user.ID),
		Name:  user.Name,
		Email: user.Email,
		Token: string(token),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		ID:    string(user.ID),
		Name:  user.Name,
		Email: user.Email,
		Token: string(token),
	})
}

type userSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// profile returns the authenticated caller's own account.
func (h *Handlers) profile(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	user, err := h.users.GetUser(userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userSummary{
		ID:    string(user.ID),
		Name:  user.Name,
		Email: user.Email,
	})
}

func (h *Handlers) searchUsers(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	keyword := r.URL.Query().Get("search")
	matches, err := h.index.Search(r.Context(), keyword, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	results := lo.FilterMap(matches, func(m search.Match, _ int) (userSummary, bool) {
		if m.UserID == userID {
			return userSummary{}, false
		}
		return userSummary{ID: string(m.UserID), Name: m.Name, Email: m.Email}, true
	})
	writeJSON(w, http.StatusOK, results)
}

type friendRequestBody struct {
	UserID string `json:"userId"`
}

func (h *Handlers) sendFriendRequest(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	var req friendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if _, err := h.friends.SendRequest(userID, domain.UserID(req.UserID)); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend request sent"})
}

type respondRequestBody struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
}

func (h *Handlers) respondFriendRequest(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	var req respondRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid requestId")
		return
	}
	if err := h.friends.Respond(userID, requestID, services.Action(req.Action)); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend request " + req.Action + "ed"})
}

type friendRequestView struct {
	ID     string `json:"_id"`
	From   string `json:"from"`
	Status string `json:"status"`
}

type friendsResponse struct {
	Friends        []string            `json:"friends"`
	FriendRequests []friendRequestView `json:"friendRequests"`
}

func (h *Handlers) listFriends(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	friends, pending, err := h.friends.ListFriends(userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendsResponse{
		Friends: lo.Map(friends, func(id domain.UserID, _ int) string { return string(id) }),
		FriendRequests: lo.Map(pending, func(fr domain.FriendRequest, _ int) friendRequestView {
			return friendRequestView{
				ID:     fr.ID.String(),
				From:   string(fr.From),
				Status: string(fr.Status),
			}
		}),
	})
}

type createChatRequest struct {
	Name    string   `json:"name"`
	IsGroup bool     `json:"isGroup"`
	Members []string `json:"members"`
}

func (h *Handlers) createChat(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Members) == 0 {
		writeError(w, http.StatusBadRequest, "members are required")
		return
	}
	members := lo.Map(req.Members, func(id string, _ int) domain.UserID { return domain.UserID(id) })
	if !lo.Contains(members, userID) {
		members = append(members, userID)
	}
	chat, err := h.chats.CreateChat(req.Name, req.IsGroup, members)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"_id":     string(chat.ID),
		"name":    chat.Name,
		"isGroup": chat.IsGroup,
		"members": req.Members,
	})
}

// writeDomainError maps sentinel errors onto HTTP statuses. Validation and
// duplicate-state errors are the caller's fault; conflicts during the
// transactional accept are transient and retryable.
func (h *Handlers) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound),
		stderrors.Is(err, errors.ErrRequestNotFound),
		stderrors.Is(err, errors.ErrChatNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case stderrors.Is(err, errors.ErrInvalidCredentials),
		stderrors.Is(err, errors.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case stderrors.Is(err, errors.ErrGraphConflict):
		writeError(w, http.StatusConflict, err.Error())
	case stderrors.Is(err, errors.ErrSelfFriendRequest),
		stderrors.Is(err, errors.ErrAlreadyFriends),
		stderrors.Is(err, errors.ErrRequestAlreadySent),
		stderrors.Is(err, errors.ErrRequestAlreadyExists),
		stderrors.Is(err, errors.ErrInvalidAction),
		stderrors.Is(err, errors.ErrUserAlreadyExists),
		stderrors.Is(err, errors.ErrInvalidPassword),
		stderrors.Is(err, errors.ErrNotChatMember),
		stderrors.Is(err, errors.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
