// Package seed loads catalog entries from the Kaggle-style pokemon CSV export.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/service"
)

// Columns is the expected header, in order.
var Columns = []string{
	"#", "Name", "Type 1", "Type 2", "Total", "HP", "Attack", "Defense",
	"Sp. Atk", "Sp. Def", "Speed", "Generation", "Legendary",
}

// ErrBadHeader is returned when the first record does not match Columns.
var ErrBadHeader = errors.New("seed: unexpected csv header")

// Read parses every record of r. Line numbers in errors are 1-based and count the header.
func Read(r io.Reader) ([]model.CreatePokemon, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("seed: read header: %w", err)
	}
	for i, col := range Columns {
		if strings.TrimSpace(header[i]) != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, header[i], col)
		}
	}

	var out []model.CreatePokemon
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("seed: line %d: %w", line, err)
		}
		out = append(out, p)
	}
}

func parseRecord(rec []string) (model.CreatePokemon, error) {
	ints := make([]int32, 0, 9)
	for _, idx := range []int{0, 4, 5, 6, 7, 8, 9, 10, 11} {
		v, err := strconv.ParseInt(strings.TrimSpace(rec[idx]), 10, 32)
		if err != nil {
			return model.CreatePokemon{}, fmt.Errorf("column %q: %w", Columns[idx], err)
		}
		ints = append(ints, int32(v))
	}
	legendary, err := strconv.ParseBool(strings.TrimSpace(rec[12]))
	if err != nil {
		return model.CreatePokemon{}, fmt.Errorf("column %q: %w", Columns[12], err)
	}

	p := model.CreatePokemon{
		Number:     ints[0],
		Name:       rec[1],
		Type1:      rec[2],
		Total:      ints[1],
		HP:         ints[2],
		Attack:     ints[3],
		Defense:    ints[4],
		SpAtk:      ints[5],
		SpDef:      ints[6],
		Speed:      ints[7],
		Generation: ints[8],
		Legendary:  &legendary,
	}
	if t2 := strings.TrimSpace(rec[3]); t2 != "" {
		p.Type2 = &t2
	}
	return p, nil
}

// File reads path and imports its records through svc in one transaction.
func File(ctx context.Context, svc service.PokemonService, path string, replace bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return 0, err
	}
	return svc.ImportPokemons(ctx, rows, replace)
}
