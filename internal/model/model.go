// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

// Pokemon is one catalog entry.
type Pokemon struct {
	ID         int64   `json:"id"`
	Number     int32   `json:"number"`
	Name       string  `json:"name"`
	Type1      string  `json:"type_1"`
	Type2      *string `json:"type_2"`
	Total      int32   `json:"total"`
	HP         int32   `json:"hp"`
	Attack     int32   `json:"attack"`
	Defense    int32   `json:"defense"`
	SpAtk      int32   `json:"sp_atk"`
	SpDef      int32   `json:"sp_def"`
	Speed      int32   `json:"speed"`
	Generation int32   `json:"generation"`
	Legendary  bool    `json:"legendary"`
}

// CreatePokemon is the full set of writable attributes. PUT uses the same shape.
type CreatePokemon struct {
	Number     int32   `json:"number" validate:"min=1"`
	Name       string  `json:"name" validate:"required,max=100"`
	Type1      string  `json:"type_1" validate:"required,pokemon_type"`
	Type2      *string `json:"type_2" validate:"omitempty,pokemon_type"`
	Total      int32   `json:"total" validate:"min=1"`
	HP         int32   `json:"hp" validate:"min=1"`
	Attack     int32   `json:"attack" validate:"min=1"`
	Defense    int32   `json:"defense" validate:"min=1"`
	SpAtk      int32   `json:"sp_atk" validate:"min=1"`
	SpDef      int32   `json:"sp_def" validate:"min=1"`
	Speed      int32   `json:"speed" validate:"min=1"`
	Generation int32   `json:"generation" validate:"min=1,max=9"`
	Legendary  *bool   `json:"legendary" validate:"required"`
}

// UpdatePokemon replaces every writable attribute of an existing entry.
type UpdatePokemon = CreatePokemon

// PatchPokemon carries only the attributes present in the request body.
// Type2 distinguishes "absent" from an explicit null that clears it.
type PatchPokemon struct {
	Number     *int32           `json:"number" validate:"omitnil,min=1"`
	Name       *string          `json:"name" validate:"omitnil,min=1,max=100"`
	Type1      *string          `json:"type_1" validate:"omitnil,pokemon_type"`
	Type2      Nullable[string] `json:"type_2"`
	Total      *int32           `json:"total" validate:"omitnil,min=1"`
	HP         *int32           `json:"hp" validate:"omitnil,min=1"`
	Attack     *int32           `json:"attack" validate:"omitnil,min=1"`
	Defense    *int32           `json:"defense" validate:"omitnil,min=1"`
	SpAtk      *int32           `json:"sp_atk" validate:"omitnil,min=1"`
	SpDef      *int32           `json:"sp_def" validate:"omitnil,min=1"`
	Speed      *int32           `json:"speed" validate:"omitnil,min=1"`
	Generation *int32           `json:"generation" validate:"omitnil,min=1,max=9"`
	Legendary  *bool            `json:"legendary"`
}

// Empty reports whether the patch changes nothing.
func (p PatchPokemon) Empty() bool {
	return p.Number == nil && p.Name == nil && p.Type1 == nil && !p.Type2.Set &&
		p.Total == nil && p.HP == nil && p.Attack == nil && p.Defense == nil &&
		p.SpAtk == nil && p.SpDef == nil && p.Speed == nil && p.Generation == nil &&
		p.Legendary == nil
}

// PokemonsPage is the list response.
type PokemonsPage struct {
	Pokemons   []Pokemon `json:"pokemons"`
	Page       int64     `json:"page"`
	PageSize   int64     `json:"page_size"`
	TotalPages int64     `json:"total_pages"`
}
