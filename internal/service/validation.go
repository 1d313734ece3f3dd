package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/pokedex-service/internal/model"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("pokemon_type", func(fl validator.FieldLevel) bool {
		return model.IsPokemonType(fl.Field().String())
	})
	return v
}

// fieldErrors converts validator output into FieldError values, prefixing names with prefix.
func fieldErrors(err error, prefix string) []FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: prefix + fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "pokemon_type":
		return "must be one of: " + strings.Join(model.PokemonTypes, ", ")
	default:
		return "is invalid"
	}
}

func normalizeCreate(in model.CreatePokemon) model.CreatePokemon {
	in.Name = strings.TrimSpace(in.Name)
	in.Type1 = model.NormalizeType(in.Type1)
	if in.Type2 != nil {
		t := model.NormalizeType(*in.Type2)
		if t == "" {
			in.Type2 = nil
		} else {
			in.Type2 = &t
		}
	}
	return in
}

func normalizePatch(in model.PatchPokemon) model.PatchPokemon {
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
	if in.Type1 != nil {
		t := model.NormalizeType(*in.Type1)
		in.Type1 = &t
	}
	if in.Type2.Value != nil {
		t := model.NormalizeType(*in.Type2.Value)
		if t == "" {
			in.Type2.Value = nil
		} else {
			in.Type2.Value = &t
		}
	}
	return in
}

func (s *pokemonService) validateCreate(in model.CreatePokemon, prefix string) []FieldError {
	ferrs := fieldErrors(s.validate.Struct(in), prefix)
	if in.Type2 != nil && *in.Type2 == in.Type1 {
		ferrs = append(ferrs, FieldError{Field: prefix + "type_2", Message: "must differ from type_1"})
	}
	return ferrs
}

func (s *pokemonService) validatePatch(in model.PatchPokemon) []FieldError {
	ferrs := fieldErrors(s.validate.Struct(in), "")
	if in.Type2.Value != nil && !model.IsPokemonType(*in.Type2.Value) {
		ferrs = append(ferrs, FieldError{Field: "type_2", Message: "must be one of: " + strings.Join(model.PokemonTypes, ", ")})
	}
	if in.Type1 != nil && in.Type2.Value != nil && *in.Type1 == *in.Type2.Value {
		ferrs = append(ferrs, FieldError{Field: "type_2", Message: "must differ from type_1"})
	}
	return ferrs
}
