package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bnema/pokedex-cli/internal/application"
	"github.com/bnema/pokedex-cli/internal/domain"
)

type pageResponse struct {
	Pokemon []domain.PokemonSummary `json:"pokemon"`
	Cards   []application.Card      `json:"cards,omitempty"`
	Shown   int                     `json:"shown"`
	Total   int                     `json:"total"`
	HasMore bool                    `json:"has_more"`
}

type suggestResponse struct {
	Query       string                  `json:"query"`
	Suggestions []domain.PokemonSummary `json:"suggestions"`
}

type searchResponse struct {
	Query   string                  `json:"query"`
	Results []domain.PokemonSummary `json:"results"`
}

type sessionResponse struct {
	SignedIn    bool   `json:"signed_in"`
	UID         string `json:"uid,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Ref   string `json:"ref,omitempty"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.ensureIndex(r)

	if search, ok := q["search"]; ok {
		results, cleared := s.catalog.Submit(strings.Join(search, " "))
		writeJSON(w, http.StatusOK, searchResponse{Query: cleared, Results: results})
		return
	}
	if query, ok := q["q"]; ok {
		raw := strings.Join(query, " ")
		writeJSON(w, http.StatusOK, suggestResponse{Query: raw, Suggestions: s.catalog.Suggest(raw)})
		return
	}

	shown := 0
	if v := q.Get("shown"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "shown must be a non-negative integer"})
			return
		}
		shown = n
	}

	page := s.catalog.Page(shown)
	resp := pageResponse{
		Pokemon: page,
		Shown:   len(page),
		Total:   len(s.catalog.Index()),
		HasMore: s.catalog.HasMore(len(page)),
	}
	if v, _ := strconv.ParseBool(q.Get("cards")); v {
		cards, err := s.catalog.Cards(r.Context(), page)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		resp.Cards = cards
	}

	writeJSON(w, http.StatusOK, resp)
}

// ensureIndex loads the index on first use. An empty index is retried on
// the next request.
func (s *Server) ensureIndex(r *http.Request) {
	if len(s.catalog.Index()) == 0 {
		s.catalog.LoadIndex(r.Context())
	}
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	ref := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "ref")))

	detail, err := s.details.LoadDetail(r.Context(), ref)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, detail)
	case application.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "...NOT FOUND", Ref: ref})
	default:
		s.logger.Warn("load detail", zap.String("ref", ref), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Ref: ref})
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{SignedIn: false})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.SignIn(r.Context())
	if err != nil {
		s.logger.Warn("sign in", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.SignOut(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sessionResponse{SignedIn: false})
	case errors.Is(err, domain.ErrNotSignedIn):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		s.logger.Warn("sign out", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}

func toSessionResponse(session domain.UserSession) sessionResponse {
	return sessionResponse{
		SignedIn:    !session.IsZero(),
		UID:         session.UID,
		DisplayName: session.DisplayName,
		Email:       session.Email,
		Provider:    session.Provider,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
