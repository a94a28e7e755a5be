// Package pokeapitest serves a small PokeAPI-compatible fixture over httptest.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Stat struct {
	Name  string
	Value int
}

type FlavorText struct {
	Text     string
	Language string
}

type Pokemon struct {
	ID        int
	Name      string
	Types     []string
	Weight    int
	Height    int
	Stats     []Stat
	Abilities []string
	// Sprites is the raw JSON of the sprites object.
	Sprites     string
	FlavorTexts []FlavorText
}

// Options tune failure and latency behaviour of the fixture server.
type Options struct {
	FailTypes   bool
	FailSpecies bool
	FailIndex   bool
	// Delays holds a per-reference delay applied to detail requests.
	Delays map[string]time.Duration
}

type Server struct {
	*httptest.Server

	mons  []Pokemon
	opts  Options
	mu    sync.Mutex
	hits  map[string]int
	byRef map[string]Pokemon
}

func NewServer(mons []Pokemon, opts Options) *Server {
	s := &Server{
		mons:  mons,
		opts:  opts,
		hits:  map[string]int{},
		byRef: map[string]Pokemon{},
	}
	for _, mon := range mons {
		s.byRef[strconv.Itoa(mon.ID)] = mon
		s.byRef[mon.Name] = mon
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/pokemon/{$}", s.handleIndex)
	mux.HandleFunc("GET /api/v2/pokemon/{ref}", s.handlePokemon)
	mux.HandleFunc("GET /api/v2/pokemon-species/{id}/", s.handleSpecies)
	mux.HandleFunc("GET /api/v2/type/{name}/", s.handleType)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))

	return s
}

// BaseURL is the API root to hand to the client.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v2"
}

func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.opts.FailIndex {
		http.Error(w, "index unavailable", http.StatusServiceUnavailable)
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	results := make([]map[string]string, 0, limit)
	for i := offset; i < len(s.mons) && i < offset+limit; i++ {
		if i < 0 {
			continue
		}
		results = append(results, map[string]string{
			"name": s.mons[i].Name,
			"url":  fmt.Sprintf("%s/api/v2/pokemon/%d/", s.URL, s.mons[i].ID),
		})
	}

	var next, previous *string
	if offset+limit < len(s.mons) {
		link := fmt.Sprintf("%s/api/v2/pokemon/?offset=%d&limit=%d", s.URL, offset+limit, limit)
		next = &link
	}
	if offset > 0 {
		prevOffset := offset - limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		link := fmt.Sprintf("%s/api/v2/pokemon/?offset=%d&limit=%d", s.URL, prevOffset, limit)
		previous = &link
	}

	writeJSON(w, map[string]any{
		"count":    len(s.mons),
		"next":     next,
		"previous": previous,
		"results":  results,
	})
}

func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSuffix(r.PathValue("ref"), "/")
	if delay, ok := s.opts.Delays[ref]; ok {
		time.Sleep(delay)
	}

	mon, ok := s.byRef[ref]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	types := make([]map[string]any, 0, len(mon.Types))
	for i, name := range mon.Types {
		types = append(types, map[string]any{
			"slot": i + 1,
			"type": map[string]string{"name": name, "url": fmt.Sprintf("%s/api/v2/type/%s/", s.URL, name)},
		})
	}
	stats := make([]map[string]any, 0, len(mon.Stats))
	for _, stat := range mon.Stats {
		stats = append(stats, map[string]any{
			"base_stat": stat.Value,
			"effort":    0,
			"stat":      map[string]string{"name": stat.Name, "url": s.URL + "/api/v2/stat/" + stat.Name + "/"},
		})
	}
	abilities := make([]map[string]any, 0, len(mon.Abilities))
	for i, name := range mon.Abilities {
		abilities = append(abilities, map[string]any{
			"ability":   map[string]string{"name": name, "url": s.URL + "/api/v2/ability/" + name + "/"},
			"is_hidden": i > 0,
			"slot":      i + 1,
		})
	}

	sprites := json.RawMessage(`{}`)
	if mon.Sprites != "" {
		sprites = json.RawMessage(mon.Sprites)
	}

	writeJSON(w, map[string]any{
		"id":        mon.ID,
		"name":      mon.Name,
		"weight":    mon.Weight,
		"height":    mon.Height,
		"types":     types,
		"stats":     stats,
		"abilities": abilities,
		"sprites":   sprites,
	})
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	if s.opts.FailSpecies {
		http.Error(w, "species unavailable", http.StatusInternalServerError)
		return
	}

	mon, ok := s.byRef[r.PathValue("id")]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	entries := make([]map[string]any, 0, len(mon.FlavorTexts))
	for _, text := range mon.FlavorTexts {
		entries = append(entries, map[string]any{
			"flavor_text": text.Text,
			"language":    map[string]string{"name": text.Language},
		})
	}

	writeJSON(w, map[string]any{"flavor_text_entries": entries})
}

func (s *Server) handleType(w http.ResponseWriter, r *http.Request) {
	if s.opts.FailTypes {
		http.Error(w, "type unavailable", http.StatusInternalServerError)
		return
	}

	name := r.PathValue("name")
	relation := func(names ...string) []map[string]string {
		out := make([]map[string]string, 0, len(names))
		for _, n := range names {
			out = append(out, map[string]string{"name": n, "url": s.URL + "/api/v2/type/" + n + "/"})
		}
		return out
	}

	var relations map[string]any
	switch name {
	case "grass":
		relations = map[string]any{
			"double_damage_from": relation("fire", "ice", "poison", "flying", "bug"),
			"double_damage_to":   relation("water", "ground", "rock"),
			"half_damage_from":   relation("water", "electric", "grass", "ground"),
			"half_damage_to":     relation("fire", "grass", "poison", "flying", "bug", "dragon", "steel"),
			"no_damage_from":     relation(),
			"no_damage_to":       relation(),
		}
	case "poison":
		relations = map[string]any{
			"double_damage_from": relation("ground", "psychic"),
			"double_damage_to":   relation("grass", "fairy"),
			"half_damage_from":   relation("fighting", "poison", "bug", "grass", "fairy"),
			"half_damage_to":     relation("poison", "ground", "rock", "ghost"),
			"no_damage_from":     relation(),
			"no_damage_to":       relation("steel"),
		}
	default:
		relations = map[string]any{
			"double_damage_from": relation("water"),
			"double_damage_to":   relation("grass"),
			"half_damage_from":   relation(),
			"half_damage_to":     relation(),
			"no_damage_from":     relation(),
			"no_damage_to":       relation(),
		}
	}

	writeJSON(w, map[string]any{"name": name, "damage_relations": relations})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
