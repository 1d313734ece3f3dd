// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/pokedex-service/internal/model"
)

// ErrInvalidInput marks rejected query or path parameters (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrValidation marks a well-formed request body whose values break the entity rules (HTTP 422).
var ErrValidation = errors.New("validation failed")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldsError aggregates FieldError instances and unwraps to its kind.
type fieldsError struct {
	kind   error
	fields []FieldError
}

func (e *fieldsError) Error() string        { return e.kind.Error() }
func (e *fieldsError) Unwrap() error        { return e.kind }
func (e *fieldsError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an ErrInvalidInput carrying fe.
func NewInvalidInputError(fe ...FieldError) error {
	return &fieldsError{kind: ErrInvalidInput, fields: fe}
}

// newInvalidInput returns nil when there is nothing to report.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &fieldsError{kind: ErrInvalidInput, fields: fe}
}

func newValidation(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &fieldsError{kind: ErrValidation, fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

// ListParams are the raw listing inputs; nil means "not supplied".
type ListParams struct {
	Page       *int64
	PageSize   *int64
	Name       string
	Type       string
	Generation *int32
	Legendary  *bool
}

// PokemonService defines catalog use cases.
type PokemonService interface {
	ListPokemons(ctx context.Context, params ListParams) (model.PokemonsPage, error)
	GetPokemon(ctx context.Context, id int64) (model.Pokemon, error)
	CreatePokemon(ctx context.Context, in model.CreatePokemon) (model.Pokemon, error)
	UpdatePokemon(ctx context.Context, id int64, in model.UpdatePokemon) (model.Pokemon, error)
	PatchPokemon(ctx context.Context, id int64, in model.PatchPokemon) (model.Pokemon, error)
	DeletePokemon(ctx context.Context, id int64) error
	// ImportPokemons validates every entry, then inserts all of them in one transaction.
	// With replace set the existing catalog is removed inside the same transaction first.
	ImportPokemons(ctx context.Context, in []model.CreatePokemon, replace bool) (int, error)
}
