package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

// PartialFailurePolicy decides what happens when a secondary detail fetch
// fails after the primary record was loaded.
type PartialFailurePolicy string

const (
	// PartialFailureAbort fails the whole detail load.
	PartialFailureAbort PartialFailurePolicy = "abort"
	// PartialFailureDegrade leaves the affected fields empty.
	PartialFailureDegrade PartialFailurePolicy = "degrade"
)

func ParsePartialFailurePolicy(raw string) (PartialFailurePolicy, error) {
	switch PartialFailurePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PartialFailureDegrade:
		return PartialFailureDegrade, nil
	case PartialFailureAbort:
		return PartialFailureAbort, nil
	default:
		return "", fmt.Errorf("unsupported partial failure policy %q", raw)
	}
}

const flavorTextLanguage = "en"

type DetailService struct {
	api    ports.PokemonAPI
	random ports.Random
	logger *zap.Logger
	policy PartialFailurePolicy
}

type DetailOption func(*DetailService)

func WithRandom(random ports.Random) DetailOption {
	return func(s *DetailService) {
		if random != nil {
			s.random = random
		}
	}
}

func WithPartialFailurePolicy(policy PartialFailurePolicy) DetailOption {
	return func(s *DetailService) {
		if policy != "" {
			s.policy = policy
		}
	}
}

func NewDetailService(api ports.PokemonAPI, logger *zap.Logger, opts ...DetailOption) *DetailService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &DetailService{
		api:    api,
		random: ports.SystemRandom{},
		logger: logger,
		policy: PartialFailureDegrade,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *DetailService) Policy() PartialFailurePolicy {
	return s.policy
}

// LoadDetail aggregates the primary record with its damage relations, its
// neighbours in id order and a flavor text. The secondary fetches run
// concurrently once the primary record is known.
func (s *DetailService) LoadDetail(ctx context.Context, ref string) (domain.PokemonDetail, error) {
	ref = strings.TrimSpace(ref)

	record, err := s.api.GetPokemon(ctx, ref)
	if err != nil {
		return domain.PokemonDetail{}, fmt.Errorf("load pokemon %q: %w", ref, err)
	}
	if record.ID <= 0 || record.Name == "" {
		return domain.PokemonDetail{}, fmt.Errorf("load pokemon %q: empty record: %w", ref, domain.ErrPokemonNotFound)
	}

	relations := make([]domain.TypeDamageRelations, len(record.Types))
	var (
		previous, next *string
		description    string
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range record.Types {
		relations[i] = domain.TypeDamageRelations{Type: t.Name}
		g.Go(func() error {
			rel, err := s.api.GetDamageRelations(gctx, t.URL)
			if err != nil {
				return s.partial(record, "damage relations", fmt.Errorf("load damage relations for type %s: %w", t.Name, err))
			}
			relations[i].Relations = &rel
			return nil
		})
	}
	g.Go(func() error {
		p, n, err := s.adjacent(gctx, record.ID)
		if err != nil {
			return s.partial(record, "adjacency", err)
		}
		previous, next = p, n
		return nil
	})
	g.Go(func() error {
		text, err := s.flavorText(gctx, record.ID)
		if err != nil {
			return s.partial(record, "species", err)
		}
		description = text
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.PokemonDetail{}, fmt.Errorf("load pokemon %q: %w", ref, err)
	}

	detail := s.reshape(record)
	detail.Previous = previous
	detail.Next = next
	detail.Description = description
	detail.DamageRelations = relations

	return detail, nil
}

// LoadTracked loads ref under a fresh ticket and reports ErrStaleResponse
// when a newer request was issued on tracker in the meantime.
func (s *DetailService) LoadTracked(ctx context.Context, tracker *Tracker, ref string) (domain.PokemonDetail, error) {
	ticket := tracker.Begin(ref)

	detail, err := s.LoadDetail(ctx, ref)
	if !tracker.Accept(ticket) {
		s.logger.Debug("discard stale detail response", zap.String("ref", ref))
		return domain.PokemonDetail{}, domain.ErrStaleResponse
	}

	return detail, err
}

func (s *DetailService) partial(record ports.PokemonRecord, step string, err error) error {
	if s.policy == PartialFailureDegrade {
		s.logger.Warn("degraded pokemon detail",
			zap.Int("id", record.ID),
			zap.String("step", step),
			zap.Error(err),
		)
		return nil
	}

	return err
}

// adjacent resolves the names of the previous and next entries in id order by
// reading the one-entry index page at offset id-1 and following its links.
func (s *DetailService) adjacent(ctx context.Context, id int) (*string, *string, error) {
	page, err := s.api.ListPokemon(ctx, 1, id-1)
	if err != nil {
		return nil, nil, fmt.Errorf("load adjacency page: %w", err)
	}

	var previous, next *string
	g, gctx := errgroup.WithContext(ctx)
	if page.Previous != "" {
		g.Go(func() error {
			name, err := s.firstName(gctx, page.Previous)
			if err != nil {
				return fmt.Errorf("load previous entry: %w", err)
			}
			previous = name
			return nil
		})
	}
	if page.Next != "" {
		g.Go(func() error {
			name, err := s.firstName(gctx, page.Next)
			if err != nil {
				return fmt.Errorf("load next entry: %w", err)
			}
			next = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return previous, next, nil
}

func (s *DetailService) firstName(ctx context.Context, pageURL string) (*string, error) {
	page, err := s.api.GetIndexPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, nil
	}

	name := page.Results[0].Name
	return &name, nil
}

func (s *DetailService) flavorText(ctx context.Context, id int) (string, error) {
	species, err := s.api.GetSpecies(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load species: %w", err)
	}

	texts := make([]string, 0, len(species.FlavorTextEntries))
	for _, entry := range species.FlavorTextEntries {
		if entry.Language != flavorTextLanguage {
			continue
		}
		texts = append(texts, domain.NormalizeFlavorText(entry.Text))
	}
	if len(texts) == 0 {
		return "", nil
	}

	return texts[s.random.IntN(len(texts))], nil
}

func (s *DetailService) reshape(record ports.PokemonRecord) domain.PokemonDetail {
	upstream := make(map[domain.StatKey]int, len(record.Stats))
	for _, stat := range record.Stats {
		upstream[domain.StatKey(stat.Name)] = stat.BaseStat
	}
	stats, missing := domain.NormalizeStats(upstream)
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, key := range missing {
			names = append(names, string(key))
		}
		s.logger.Warn("pokemon record missing stats", zap.Int("id", record.ID), zap.Strings("stats", names))
	}

	sprites := make([]string, 0, len(record.Sprites))
	for _, field := range record.Sprites {
		if field.IsString {
			sprites = append(sprites, field.Value)
		}
	}

	return domain.PokemonDetail{
		ID:         record.ID,
		Name:       record.Name,
		Types:      typeNames(record.Types),
		WeightHg:   record.Weight,
		HeightDm:   record.Height,
		Weight:     domain.ScaleTenths(record.Weight),
		Height:     domain.ScaleTenths(record.Height),
		Stats:      stats,
		Abilities:  domain.FormatAbilities(record.Abilities),
		Sprites:    sprites,
		ArtworkURL: domain.ArtworkURL(record.ID),
	}
}

// IsNotFound reports whether err should be presented as a missing entry.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrPokemonNotFound)
}
