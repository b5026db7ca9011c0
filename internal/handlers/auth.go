package handlers

import (
	"net/http"
	"strings"

	"smartisp.net/console/internal/middleware"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		h.sendJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Username and password are required"})
		return
	}

	token, err := h.svc.Auth.Login(r.Context(), req.Username, req.Password, req.Remember)
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":    token,
			"username": req.Username,
			"remember": req.Remember,
		},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Auth.Logout(r.Context()); err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.Auth.IsAuthenticated(r.Context())
	if err != nil {
		h.sendError(w, err)
		return
	}

	data := map[string]interface{}{"authenticated": ok}
	if claims := middleware.GetUserFromContext(r); claims != nil {
		data["username"] = claims.Username
		data["remember"] = claims.Remember
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: data})
}
