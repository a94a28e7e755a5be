package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

const defaultCardConcurrency = 8

// Card is a list entry enriched with the data needed to theme it.
type Card struct {
	Summary    domain.PokemonSummary `json:"summary" yaml:"summary"`
	ID         int                   `json:"id" yaml:"id"`
	Types      []string              `json:"types" yaml:"types"`
	ArtworkURL string                `json:"artwork_url" yaml:"artwork_url"`
}

func (c Card) Number() string {
	return domain.FormatNumber(c.ID)
}

func (c Card) PrimaryType() string {
	if len(c.Types) == 0 {
		return ""
	}
	return c.Types[0]
}

// CatalogService owns the in-memory index and answers list and autocomplete
// queries against it.
type CatalogService struct {
	api             ports.PokemonAPI
	logger          *zap.Logger
	cardConcurrency int

	mu    sync.RWMutex
	index []domain.PokemonSummary
}

func NewCatalogService(api ports.PokemonAPI, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogService{
		api:             api,
		logger:          logger,
		cardConcurrency: defaultCardConcurrency,
		index:           []domain.PokemonSummary{},
	}
}

// LoadIndex fetches the whole index in one request. A failed fetch is logged
// and leaves the index empty.
func (s *CatalogService) LoadIndex(ctx context.Context) []domain.PokemonSummary {
	page, err := s.api.ListPokemon(ctx, domain.IndexLimit, 0)
	if err != nil {
		s.logger.Warn("load pokemon index", zap.Error(err))
		s.setIndex(nil)
		return []domain.PokemonSummary{}
	}

	s.setIndex(page.Results)
	s.logger.Debug("loaded pokemon index", zap.Int("entries", len(page.Results)), zap.Int("upstream_count", page.Count))

	return s.Index()
}

func (s *CatalogService) Index() []domain.PokemonSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PokemonSummary, len(s.index))
	copy(out, s.index)
	return out
}

func (s *CatalogService) Page(shown int) []domain.PokemonSummary {
	return domain.Page(s.Index(), shown)
}

func (s *CatalogService) HasMore(shown int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.HasMore(s.index, shown)
}

func (s *CatalogService) Suggest(query string) []domain.PokemonSummary {
	return domain.Suggest(s.Index(), query)
}

func (s *CatalogService) Submit(query string) ([]domain.PokemonSummary, string) {
	return domain.Submit(s.Index(), query)
}

// Cards resolves the id and types of each summary with bounded concurrency.
// A card whose record cannot be fetched keeps its index id and no types.
func (s *CatalogService) Cards(ctx context.Context, summaries []domain.PokemonSummary) ([]Card, error) {
	cards := make([]Card, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cardConcurrency)
	for i, summary := range summaries {
		cards[i] = Card{Summary: summary, ID: summary.ID(), Types: []string{}}
		if cards[i].ID > 0 {
			cards[i].ArtworkURL = domain.ArtworkURL(cards[i].ID)
		}

		g.Go(func() error {
			record, err := s.api.GetPokemon(gctx, summary.Name)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("load card", zap.String("pokemon", summary.Name), zap.Error(err))
				return nil
			}

			cards[i].ID = record.ID
			cards[i].ArtworkURL = domain.ArtworkURL(record.ID)
			cards[i].Types = typeNames(record.Types)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	return cards, nil
}

func (s *CatalogService) setIndex(results []domain.PokemonSummary) {
	index := make([]domain.PokemonSummary, len(results))
	copy(index, results)

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()
}

func typeNames(types []domain.NamedResource) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	return names
}
