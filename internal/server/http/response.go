package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/drawgallery/internal/common"
)

func sendJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, map[string]string{"error": message}, status)
}

var responseByError = []struct {
	err     error
	status  int
	message string
}{
	{common.ErrorUnauthorized, http.StatusUnauthorized, "Unauthorized or session expired"},
	{common.ErrorInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{common.ErrorMissingCredentials, http.StatusBadRequest, "Missing email or password"},
	{common.ErrorInvalidArgument, http.StatusBadRequest, "Invalid request"},
	{common.ErrorNotFound, http.StatusNotFound, "Drawing not found"},
	{common.ErrorForbidden, http.StatusForbidden, "Access denied"},
}

// writeError sends the response for a service error. invalidMsg replaces
// the generic InvalidArgument message when not empty.
func writeError(w http.ResponseWriter, err error, invalidMsg string) {
	for _, e := range responseByError {
		if errors.Is(err, e.err) {
			msg := e.message
			if e.err == common.ErrorInvalidArgument && invalidMsg != "" {
				msg = invalidMsg
			}
			sendError(w, msg, e.status)
			return
		}
	}
	sendError(w, "Internal server error", http.StatusInternalServerError)
}

var errEmptyBody = errors.New("empty body")

// decodeJSON reads a single JSON object from the limited request body.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON object")
	}
	return nil
}

// sendDecodeError answers a body that decodeJSON rejected.
func sendDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	sendError(w, "Invalid request body", http.StatusBadRequest)
}

// tokenFromRequest reads the session cookie, falling back to a bearer
// Authorization header.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(common.TokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(tok)
	}
	return ""
}
