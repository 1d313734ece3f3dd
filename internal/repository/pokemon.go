package repository

import (
	"strings"

	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
)

// PokemonColumns is the SELECT list every backend reads a model.Pokemon from, in ScanPokemon order.
const PokemonColumns = "id, number, name, type_1, type_2, total, hp, attack, defense, sp_atk, sp_def, speed, generation, legendary"

// PokemonOrder is the listing order; id breaks ties between forms sharing a number.
const PokemonOrder = "number, id"

// ScanPokemon returns the scan destinations for PokemonColumns.
func ScanPokemon(p *model.Pokemon) []any {
	return []any{
		&p.ID, &p.Number, &p.Name, &p.Type1, &p.Type2,
		&p.Total, &p.HP, &p.Attack, &p.Defense, &p.SpAtk, &p.SpDef, &p.Speed,
		&p.Generation, &p.Legendary,
	}
}

var _ paginate.Dest[model.Pokemon] = ScanPokemon

// PokemonFilter narrows a listing. Zero fields do not filter.
type PokemonFilter struct {
	// Name matches case-insensitively anywhere in the name.
	Name string
	// Type matches either type slot.
	Type       string
	Generation *int32
	Legendary  *bool
}

// PokemonBaseQuery builds the filtered listing query for the given placeholder style.
func PokemonBaseQuery(f PokemonFilter, ph paginate.Placeholders) paginate.Query {
	var (
		conds []string
		args  []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return ph.Format(len(args))
	}

	if f.Name != "" {
		conds = append(conds, "LOWER(name) LIKE "+bind("%"+escapeLike(strings.ToLower(f.Name))+"%")+` ESCAPE '\'`)
	}
	if f.Type != "" {
		conds = append(conds, "(type_1 = "+bind(f.Type)+" OR type_2 = "+bind(f.Type)+")")
	}
	if f.Generation != nil {
		conds = append(conds, "generation = "+bind(*f.Generation))
	}
	if f.Legendary != nil {
		conds = append(conds, "legendary = "+bind(*f.Legendary))
	}

	sql := "SELECT " + PokemonColumns + " FROM pokemons"
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	return paginate.Query{SQL: sql, Args: args, OrderBy: PokemonOrder, Placeholders: ph}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// PokemonAssignments renders the SET list of a PATCH and its arguments, numbered from 1.
// It returns an empty string for an empty patch.
func PokemonAssignments(p model.PatchPokemon, ph paginate.Placeholders) (string, []any) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = "+ph.Format(len(args)))
	}

	if p.Number != nil {
		set("number", *p.Number)
	}
	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Type1 != nil {
		set("type_1", *p.Type1)
	}
	if p.Type2.Set {
		set("type_2", p.Type2.Value)
	}
	if p.Total != nil {
		set("total", *p.Total)
	}
	if p.HP != nil {
		set("hp", *p.HP)
	}
	if p.Attack != nil {
		set("attack", *p.Attack)
	}
	if p.Defense != nil {
		set("defense", *p.Defense)
	}
	if p.SpAtk != nil {
		set("sp_atk", *p.SpAtk)
	}
	if p.SpDef != nil {
		set("sp_def", *p.SpDef)
	}
	if p.Speed != nil {
		set("speed", *p.Speed)
	}
	if p.Generation != nil {
		set("generation", *p.Generation)
	}
	if p.Legendary != nil {
		set("legendary", *p.Legendary)
	}
	return strings.Join(sets, ", "), args
}

// PokemonValues returns the insert/update arguments in the column order of PokemonColumns minus id.
func PokemonValues(in model.CreatePokemon) []any {
	legendary := in.Legendary != nil && *in.Legendary
	return []any{
		in.Number, in.Name, in.Type1, in.Type2,
		in.Total, in.HP, in.Attack, in.Defense, in.SpAtk, in.SpDef, in.Speed,
		in.Generation, legendary,
	}
}

// PokemonWriteColumns are the columns PokemonValues fills.
const PokemonWriteColumns = "number, name, type_1, type_2, total, hp, attack, defense, sp_atk, sp_def, speed, generation, legendary"

// PokemonInsertSQL renders the INSERT statement for PokemonValues, returning the new row.
func PokemonInsertSQL(ph paginate.Placeholders) string {
	cols := strings.Split(PokemonWriteColumns, ", ")
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = ph.Format(i + 1)
	}
	return "INSERT INTO pokemons (" + PokemonWriteColumns + ") VALUES (" + strings.Join(marks, ", ") +
		") RETURNING " + PokemonColumns
}

// PokemonReplaceSQL renders the full-row UPDATE for PokemonValues followed by the id argument.
func PokemonReplaceSQL(ph paginate.Placeholders) string {
	cols := strings.Split(PokemonWriteColumns, ", ")
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = " + ph.Format(i+1)
	}
	return "UPDATE pokemons SET " + strings.Join(sets, ", ") +
		" WHERE id = " + ph.Format(len(cols)+1) + " RETURNING " + PokemonColumns
}

// PokemonPatchSQL renders a partial UPDATE; the id argument follows the assignment arguments.
// ok is false for an empty patch.
func PokemonPatchSQL(p model.PatchPokemon, id int64, ph paginate.Placeholders) (sql string, args []any, ok bool) {
	set, args := PokemonAssignments(p, ph)
	if set == "" {
		return "", nil, false
	}
	args = append(args, id)
	return "UPDATE pokemons SET " + set + " WHERE id = " + ph.Format(len(args)) + " RETURNING " + PokemonColumns, args, true
}
