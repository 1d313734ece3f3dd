package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/maxviazov/pokedex-service/internal/config"
	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository"
)

// pokemonService holds catalog use-case logic: validation + orchestration, no transport / SQL details.
type pokemonService struct {
	repo     repository.PokemonRepository
	tx       repository.TxManager
	paging   config.PaginationConfig
	validate *validator.Validate
	log      zerolog.Logger
}

// NewPokemonService wires the catalog use cases. Zero paging values fall back to 10/100.
func NewPokemonService(repo repository.PokemonRepository, tx repository.TxManager, paging config.PaginationConfig, logger zerolog.Logger) PokemonService {
	if paging.DefaultPageSize < 1 {
		paging.DefaultPageSize = 10
	}
	if paging.MaxPageSize < paging.DefaultPageSize {
		paging.MaxPageSize = max(100, paging.DefaultPageSize)
	}
	l := logger.With().Str("module", "service").Str("component", "pokemon").Logger()
	return &pokemonService{repo: repo, tx: tx, paging: paging, validate: newValidator(), log: l}
}

func (s *pokemonService) ListPokemons(ctx context.Context, params ListParams) (model.PokemonsPage, error) {
	page := int64(1)
	if params.Page != nil {
		page = *params.Page
	}
	size := s.paging.DefaultPageSize
	if params.PageSize != nil {
		size = *params.PageSize
	}

	var ferrs []FieldError
	if page < 1 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 1"})
	}
	if size < 1 {
		ferrs = append(ferrs, FieldError{Field: "page_size", Message: "must be >= 1"})
	}
	filter := repository.PokemonFilter{
		Name:       strings.TrimSpace(params.Name),
		Generation: params.Generation,
		Legendary:  params.Legendary,
	}
	if params.Type != "" {
		filter.Type = model.NormalizeType(params.Type)
		if !model.IsPokemonType(filter.Type) {
			ferrs = append(ferrs, FieldError{Field: "type", Message: "must be one of: " + strings.Join(model.PokemonTypes, ", ")})
		}
	}
	if g := params.Generation; g != nil && (*g < 1 || *g > 9) {
		ferrs = append(ferrs, FieldError{Field: "generation", Message: "must be between 1 and 9"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("list parameters rejected")
		return model.PokemonsPage{}, err
	}
	if size > s.paging.MaxPageSize {
		size = s.paging.MaxPageSize
	}
	// the row offset (page-1)*size must fit in a BIGINT
	if page-1 > math.MaxInt64/size {
		ferrs = []FieldError{{Field: "page", Message: fmt.Sprintf("must be <= %d for page_size %d", math.MaxInt64/size+1, size)}}
		s.log.Debug().Int64("page", page).Int64("page_size", size).Msg("page offset out of range")
		return model.PokemonsPage{}, newInvalidInput(ferrs)
	}

	res, err := s.repo.List(ctx, filter, repository.PageRequest{Page: page, PageSize: size})
	if err != nil {
		s.log.Error().Err(err).Int64("page", page).Int64("page_size", size).Msg("list pokemons failed")
		return model.PokemonsPage{}, err
	}
	records := res.Records
	if records == nil {
		records = []model.Pokemon{}
	}
	return model.PokemonsPage{Pokemons: records, Page: page, PageSize: size, TotalPages: res.TotalPages}, nil
}

func (s *pokemonService) GetPokemon(ctx context.Context, id int64) (model.Pokemon, error) {
	if err := checkID(id); err != nil {
		return model.Pokemon{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *pokemonService) CreatePokemon(ctx context.Context, in model.CreatePokemon) (model.Pokemon, error) {
	start := time.Now()
	in = normalizeCreate(in)
	if err := newValidation(s.validateCreate(in, "")); err != nil {
		s.log.Debug().Str("name", in.Name).Interface("field_errors", FieldErrors(err)).Msg("pokemon validation failed")
		return model.Pokemon{}, err
	}
	out, err := s.repo.Create(ctx, in)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", in.Name).Msg("create pokemon failed")
		return model.Pokemon{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("pokemon_id", out.ID).Msg("pokemon created")
	return out, nil
}

func (s *pokemonService) UpdatePokemon(ctx context.Context, id int64, in model.UpdatePokemon) (model.Pokemon, error) {
	if err := checkID(id); err != nil {
		return model.Pokemon{}, err
	}
	in = normalizeCreate(in)
	if err := newValidation(s.validateCreate(in, "")); err != nil {
		return model.Pokemon{}, err
	}
	out, err := s.repo.Update(ctx, id, in)
	if err != nil {
		s.log.Error().Err(err).Int64("pokemon_id", id).Msg("update pokemon failed")
		return model.Pokemon{}, err
	}
	return out, nil
}

func (s *pokemonService) PatchPokemon(ctx context.Context, id int64, in model.PatchPokemon) (model.Pokemon, error) {
	if err := checkID(id); err != nil {
		return model.Pokemon{}, err
	}
	in = normalizePatch(in)
	if err := newValidation(s.validatePatch(in)); err != nil {
		return model.Pokemon{}, err
	}
	out, err := s.repo.Patch(ctx, id, in)
	if err != nil {
		s.log.Error().Err(err).Int64("pokemon_id", id).Msg("patch pokemon failed")
		return model.Pokemon{}, err
	}
	return out, nil
}

func (s *pokemonService) DeletePokemon(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("pokemon_id", id).Msg("delete pokemon failed")
		return err
	}
	s.log.Info().Int64("pokemon_id", id).Msg("pokemon deleted")
	return nil
}

func (s *pokemonService) ImportPokemons(ctx context.Context, in []model.CreatePokemon, replace bool) (int, error) {
	start := time.Now()
	rows := make([]model.CreatePokemon, len(in))
	var ferrs []FieldError
	for i, p := range in {
		rows[i] = normalizeCreate(p)
		ferrs = append(ferrs, s.validateCreate(rows[i], fmt.Sprintf("[%d].", i))...)
	}
	if err := newValidation(ferrs); err != nil {
		s.log.Debug().Int("rows", len(in)).Int("invalid_fields", len(ferrs)).Msg("import rejected")
		return 0, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if replace {
			n, err := s.repo.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("clear catalog: %w", err)
			}
			s.log.Debug().Int64("deleted", n).Msg("existing pokemons removed")
		}
		for i, p := range rows {
			if _, err := s.repo.Create(ctx, p); err != nil {
				return fmt.Errorf("row %d (%s): %w", i, p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int("rows", len(rows)).Msg("import failed")
		return 0, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int("rows", len(rows)).Msg("pokemons imported")
	return len(rows), nil
}

func checkID(id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return nil
}
