package stub

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

func (s *server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond(w, http.StatusBadRequest, nil, "All fields are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		respond(w, http.StatusConflict, nil, "User with email or username already exists")
		return
	}
	for _, acc := range s.users {
		if acc.Email == req.Email {
			respond(w, http.StatusConflict, nil, "User with email or username already exists")
			return
		}
	}

	now := time.Now().UTC()
	acc := &account{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[req.Username] = acc

	respond(w, http.StatusCreated, acc.toUser(), "User registered successfully")
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.findAccount(req.Username, req.Email)
	if acc == nil {
		respond(w, http.StatusNotFound, nil, "User does not exist")
		return
	}
	if acc.Password != req.Password {
		respond(w, http.StatusUnauthorized, nil, "Invalid user credentials")
		return
	}

	access, refreshTok := s.mintSession(acc.Username)

	respond(w, http.StatusOK, map[string]any{
		"user":         acc.toUser(),
		"accessToken":  access,
		"refreshToken": refreshTok,
	}, "User logged in successfully")
}

func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.bearerAccount(r)
	if !ok {
		respond(w, http.StatusUnauthorized, nil, "Unauthorized request")
		return
	}

	s.dropSessions(acc.Username)
	respond(w, http.StatusOK, nil, "User logged out successfully")
}

func (s *server) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.refresh[req.RefreshToken]
	if !ok {
		respond(w, http.StatusUnauthorized, nil, "Invalid refresh token")
		return
	}

	access := uuid.NewString()
	s.sessions[access] = username

	respond(w, http.StatusOK, map[string]any{"accessToken": access}, "Access token refreshed")
}

func (s *server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.bearerAccount(r)
	if !ok {
		respond(w, http.StatusUnauthorized, nil, "Unauthorized request")
		return
	}
	if acc.Password != req.OldPassword {
		respond(w, http.StatusBadRequest, nil, "Invalid old password")
		return
	}

	acc.Password = req.NewPassword
	acc.UpdatedAt = time.Now().UTC()
	respond(w, http.StatusOK, nil, "Password changed successfully")
}

func (s *server) currentUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.bearerAccount(r)
	if !ok {
		respond(w, http.StatusUnauthorized, nil, "Unauthorized request")
		return
	}

	respond(w, http.StatusOK, acc.toUser(), "Current user fetched successfully")
}

func (s *server) updateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.bearerAccount(r)
	if !ok {
		respond(w, http.StatusUnauthorized, nil, "Unauthorized request")
		return
	}

	if req.FullName != "" {
		acc.FullName = req.FullName
	}
	if req.Email != "" {
		acc.Email = req.Email
	}
	acc.UpdatedAt = time.Now().UTC()

	respond(w, http.StatusOK, acc.toUser(), "Account details updated successfully")
}

func (s *server) updateAvatar(w http.ResponseWriter, r *http.Request) {
	s.updateImage(w, r, "avatar")
}

func (s *server) updateCoverImage(w http.ResponseWriter, r *http.Request) {
	s.updateImage(w, r, "coverImage")
}

func (s *server) updateImage(w http.ResponseWriter, r *http.Request, field string) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid multipart payload")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		respond(w, http.StatusBadRequest, nil, field+" file is required")
		return
	}
	file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.bearerAccount(r)
	if !ok {
		respond(w, http.StatusUnauthorized, nil, "Unauthorized request")
		return
	}

	// A real backend would push the bytes to object storage; the stub just
	// fakes the resulting CDN URL.
	url := "https://cdn.assetmart.example/" + field + "/" + header.Filename
	if field == "avatar" {
		acc.Avatar = url
	} else {
		acc.CoverImage = url
	}
	acc.UpdatedAt = time.Now().UTC()

	respond(w, http.StatusOK, acc.toUser(), "Image updated successfully")
}

func (s *server) findAccount(username, email string) *account {
	if username != "" {
		if acc, ok := s.users[username]; ok {
			return acc
		}
	}
	if email != "" {
		for _, acc := range s.users {
			if acc.Email == email {
				return acc
			}
		}
	}
	return nil
}
