package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/validation"
)

type authBody struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req validation.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", res.User.Email)
	writeJSON(w, http.StatusCreated, authBody{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User,
	})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authBody{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
}

func (s *HTTPServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	user, err := s.users.GetProfile(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

func (s *HTTPServer) handleGoogleStart(w http.ResponseWriter, r *http.Request) {
	url, err := s.federation.Start(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (s *HTTPServer) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		s.writeError(w, r, validation.FieldErrors{{Field: "state", Message: "state and code are required"}})
		return
	}

	res, err := s.federation.Callback(r.Context(), state, code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "federated login", "email", res.User.Email)
	writeJSON(w, http.StatusOK, authBody{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
}

type healthBody struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.startedAt).Seconds(),
	})
}
