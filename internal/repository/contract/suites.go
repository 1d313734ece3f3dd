// Package contract holds behaviour suites every repository backend must pass.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository"
)

// PokemonFactory returns a repository over an empty pokemons table plus its transaction manager.
type PokemonFactory func(t *testing.T) (repo repository.PokemonRepository, tx repository.TxManager, cleanup func())

// Sample builds a valid entry; stats derive from number so rows are distinguishable.
func Sample(number int32, name string) model.CreatePokemon {
	legendary := number%50 == 0
	return model.CreatePokemon{
		Number:     number,
		Name:       name,
		Type1:      "Grass",
		Type2:      ptr("Poison"),
		Total:      300 + number,
		HP:         45,
		Attack:     49,
		Defense:    49,
		SpAtk:      65,
		SpDef:      65,
		Speed:      45,
		Generation: 1,
		Legendary:  &legendary,
	}
}

func RunPokemonRepositoryContract(t *testing.T, makeRepo PokemonFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("create_and_get", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		created, err := repo.Create(ctx, Sample(1, "Bulbasaur"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 || created.Name != "Bulbasaur" || created.Type2 == nil || *created.Type2 != "Poison" {
			t.Fatalf("unexpected created row: %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Total != 301 || got.Legendary {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(ctx, 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate_name_already_exists", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.Create(ctx, Sample(1, "Bulbasaur")); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, Sample(2, "Bulbasaur"))
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("check_violation_is_constraint", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		in := Sample(1, "Bulbasaur")
		in.HP = 0
		_, err := repo.Create(ctx, in)
		if !errors.Is(err, repository.ErrConstraint) {
			t.Fatalf("expected ErrConstraint, got %v", err)
		}
	})

	t.Run("update_replaces_row", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		created, err := repo.Create(ctx, Sample(4, "Charmander"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		in := Sample(5, "Charmeleon")
		in.Type1 = "Fire"
		in.Type2 = nil
		updated, err := repo.Update(ctx, created.ID, in)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != created.ID || updated.Name != "Charmeleon" || updated.Type1 != "Fire" || updated.Type2 != nil || updated.Number != 5 {
			t.Fatalf("unexpected updated row: %+v", updated)
		}
		if _, err := repo.Update(ctx, 999999, in); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for missing row, got %v", err)
		}
	})

	t.Run("patch_partial_and_clear", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		created, err := repo.Create(ctx, Sample(1, "Bulbasaur"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		speed := int32(99)
		patched, err := repo.Patch(ctx, created.ID, model.PatchPokemon{Speed: &speed, Type2: model.Null[string]()})
		if err != nil {
			t.Fatalf("patch: %v", err)
		}
		if patched.Speed != 99 || patched.Type2 != nil || patched.Name != "Bulbasaur" || patched.HP != 45 {
			t.Fatalf("unexpected patched row: %+v", patched)
		}

		same, err := repo.Patch(ctx, created.ID, model.PatchPokemon{})
		if err != nil {
			t.Fatalf("empty patch: %v", err)
		}
		if same.Speed != 99 {
			t.Fatalf("empty patch changed row: %+v", same)
		}
		if _, err := repo.Patch(ctx, 999999, model.PatchPokemon{Speed: &speed}); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		created, err := repo.Create(ctx, Sample(1, "Bulbasaur"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("delete_all", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		for i, name := range []string{"Bulbasaur", "Ivysaur", "Venusaur"} {
			if _, err := repo.Create(ctx, Sample(int32(i+1), name)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		n, err := repo.DeleteAll(ctx)
		if err != nil || n != 3 {
			t.Fatalf("delete all: n=%d err=%v", n, err)
		}
		page, err := repo.List(ctx, repository.PokemonFilter{}, repository.PageRequest{Page: 1, PageSize: 10})
		if err != nil || len(page.Records) != 0 {
			t.Fatalf("expected empty catalog, got %d records (err=%v)", len(page.Records), err)
		}
	})

	t.Run("list_empty_table", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		page, err := repo.List(ctx, repository.PokemonFilter{}, repository.PageRequest{Page: 1, PageSize: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(page.Records) != 0 || page.TotalPages != 0 {
			t.Fatalf("expected empty page with 0 pages, got %d records / %d pages", len(page.Records), page.TotalPages)
		}
	})

	t.Run("list_pages_and_past_end", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		// inserted out of order; listing order is by number
		for _, n := range []int32{6, 2, 9, 1, 10, 4, 3, 8, 5, 7} {
			if _, err := repo.Create(ctx, Sample(n, fmt.Sprintf("P-%02d", n))); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		want := map[int64][]int32{1: {1, 2, 3, 4, 5}, 2: {6, 7, 8, 9, 10}, 3: {}}
		for p := int64(1); p <= 3; p++ {
			page, err := repo.List(ctx, repository.PokemonFilter{}, repository.PageRequest{Page: p, PageSize: 5})
			if err != nil {
				t.Fatalf("list page %d: %v", p, err)
			}
			if page.TotalPages != 2 {
				t.Fatalf("page %d: expected 2 total pages, got %d", p, page.TotalPages)
			}
			got := numbers(page.Records)
			if fmt.Sprint(got) != fmt.Sprint(want[p]) {
				t.Fatalf("page %d: expected %v, got %v", p, want[p], got)
			}
		}
	})

	t.Run("list_concatenates_to_full_order", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		for n := int32(7); n >= 1; n-- {
			if _, err := repo.Create(ctx, Sample(n, fmt.Sprintf("P-%02d", n))); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		var all []int32
		for p := int64(1); ; p++ {
			page, err := repo.List(ctx, repository.PokemonFilter{}, repository.PageRequest{Page: p, PageSize: 3})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if page.TotalPages != 3 {
				t.Fatalf("expected 3 pages, got %d", page.TotalPages)
			}
			if len(page.Records) == 0 {
				break
			}
			all = append(all, numbers(page.Records)...)
		}
		if fmt.Sprint(all) != fmt.Sprint([]int32{1, 2, 3, 4, 5, 6, 7}) {
			t.Fatalf("unexpected concatenation: %v", all)
		}

		again, err := repo.List(ctx, repository.PokemonFilter{}, repository.PageRequest{Page: 2, PageSize: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if fmt.Sprint(numbers(again.Records)) != fmt.Sprint([]int32{4, 5, 6}) {
			t.Fatalf("repeated call differs: %v", numbers(again.Records))
		}
	})

	t.Run("list_filters", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		fire := Sample(4, "Charmander")
		fire.Type1, fire.Type2 = "Fire", nil
		flying := Sample(6, "Charizard")
		flying.Type1, flying.Type2 = "Fire", ptr("Flying")
		bird := Sample(144, "Articuno")
		bird.Type1, bird.Type2 = "Ice", ptr("Flying")
		legendary := true
		bird.Legendary = &legendary
		odd := Sample(999, "Mr_Mime%")
		for _, in := range []model.CreatePokemon{Sample(1, "Bulbasaur"), fire, flying, bird, odd} {
			if _, err := repo.Create(ctx, in); err != nil {
				t.Fatalf("seed %s: %v", in.Name, err)
			}
		}

		gen := int32(1)
		cases := []struct {
			name   string
			filter repository.PokemonFilter
			want   []int32
		}{
			{"by_type_any_slot", repository.PokemonFilter{Type: "Flying"}, []int32{6, 144}},
			{"by_name_case_insensitive", repository.PokemonFilter{Name: "CHAR"}, []int32{4, 6}},
			{"by_name_literal_wildcards", repository.PokemonFilter{Name: "_mime%"}, []int32{999}},
			{"by_legendary", repository.PokemonFilter{Legendary: &legendary}, []int32{144}},
			{"combined", repository.PokemonFilter{Type: "Fire", Generation: &gen, Name: "izard"}, []int32{6}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				page, err := repo.List(ctx, tc.filter, repository.PageRequest{Page: 1, PageSize: 10})
				if err != nil {
					t.Fatalf("list: %v", err)
				}
				if fmt.Sprint(numbers(page.Records)) != fmt.Sprint(tc.want) || page.TotalPages != 1 {
					t.Fatalf("expected %v in 1 page, got %v in %d", tc.want, numbers(page.Records), page.TotalPages)
				}
			})
		}
	})

	t.Run("within_tx_rolls_back", func(t *testing.T) {
		repo, tx, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		boom := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := repo.Create(ctx, Sample(1, "Bulbasaur")); err != nil {
				return err
			}
			// reads inside the transaction see the pending row
			page, err := repo.List(ctx, repository.PokemonFilter{}, repository.PageRequest{Page: 1, PageSize: 10})
			if err != nil {
				return err
			}
			if len(page.Records) != 1 {
				return fmt.Errorf("expected pending row, got %d", len(page.Records))
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		page, err := repo.List(ctx, repository.PokemonFilter{}, repository.PageRequest{Page: 1, PageSize: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(page.Records) != 0 {
			t.Fatalf("rollback left %d rows", len(page.Records))
		}
	})
}

func numbers(ps []model.Pokemon) []int32 {
	out := make([]int32, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Number)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
