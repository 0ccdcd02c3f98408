package http

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/dmitrijs2005/drawgallery/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type saveRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

type drawingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	DataURL   string    `json:"dataUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(d *models.Drawing) drawingResponse {
	return drawingResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		DataURL:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (s *Server) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     common.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// POST /api/auth/login
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, "")
		return
	}

	http.SetCookie(w, s.sessionCookie(token, int(s.opts.TokenValidity.Seconds())))
	sendJSON(w, map[string]string{"message": "Login successful"}, http.StatusOK)
}

// POST /api/auth/logout
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.sessionCookie("", -1))
	sendJSON(w, map[string]string{"message": "Logged out"}, http.StatusOK)
}

// GET /api/drawings
func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.drawings.List(r.Context(), tokenFromRequest(r))
	if err != nil {
		writeError(w, err, "")
		return
	}

	resp := make([]drawingResponse, 0, len(list))
	for _, d := range list {
		resp = append(resp, toResponse(d))
	}
	sendJSON(w, resp, http.StatusOK)
}

// GET /api/drawings/{id}
func (s *Server) getHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.drawings.Get(r.Context(), tokenFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Invalid drawing ID")
		return
	}
	sendJSON(w, toResponse(d), http.StatusOK)
}

// POST /api/drawings/save
func (s *Server) saveHandler(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)
	if err := s.drawings.Authenticate(r.Context(), token); err != nil {
		writeError(w, err, "")
		return
	}

	var req saveRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}

	d, created, err := s.drawings.Save(r.Context(), token, services.SaveInput{
		ID:      req.ID,
		Name:    req.Name,
		Content: req.DataURL,
	})
	if err != nil {
		msg := "Invalid drawing ID"
		if req.Name == "" || req.DataURL == "" {
			msg = "Missing name or image data"
		}
		writeError(w, err, msg)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	sendJSON(w, toResponse(d), status)
}
