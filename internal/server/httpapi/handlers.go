package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ryabovm/passport/internal/common"
	"github.com/ryabovm/passport/internal/server/users"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    authData{Token: res.Token, User: res.User},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    authData{Token: res.Token, User: res.User},
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	user, err := s.users.Profile(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Profile retrieved successfully",
		Data:    map[string]*users.User{"user": user},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Auth service is running",
		Data: map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

// writeServiceError maps service sentinels onto the status codes and
// user-facing messages of the API. Anything unmatched is an internal
// failure: the cause goes to the log, the caller gets a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			writeError(w, m.code, m.msg)
			return
		}
	}

	s.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err.Error())
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

var serviceErrors = []struct {
	err  error
	code int
	msg  string
}{
	{common.ErrorRegistrationFields, http.StatusBadRequest, "Username, email and password are required"},
	{common.ErrorLoginFields, http.StatusBadRequest, "Email and password are required"},
	{common.ErrorInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{common.ErrorPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters"},
	{common.ErrorAlreadyExists, http.StatusConflict, "User with this email or username already exists"},
	{common.ErrorInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{common.ErrorNotFound, http.StatusNotFound, "User not found"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, msgNoToken},
}
