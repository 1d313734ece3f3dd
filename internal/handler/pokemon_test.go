package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/pokedex-service/internal/handler"
	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository"
	"github.com/maxviazov/pokedex-service/internal/service"
	"github.com/maxviazov/pokedex-service/pkg/response"
)

// fakeInvalid replicates aggregated validation error semantics.
type fakeInvalid struct {
	kind error
	fe   []service.FieldError
}

func (f *fakeInvalid) Error() string                { return f.kind.Error() }
func (f *fakeInvalid) Unwrap() error                { return f.kind }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

// stubPokemonService lets us control each method outcome and captures inputs.
type stubPokemonService struct {
	listParams service.ListParams
	listRes    model.PokemonsPage
	listErr    error

	out   model.Pokemon
	err   error
	patch model.PatchPokemon
	gotID int64
}

func (s *stubPokemonService) ListPokemons(_ context.Context, p service.ListParams) (model.PokemonsPage, error) {
	s.listParams = p
	return s.listRes, s.listErr
}
func (s *stubPokemonService) GetPokemon(_ context.Context, id int64) (model.Pokemon, error) {
	s.gotID = id
	return s.out, s.err
}
func (s *stubPokemonService) CreatePokemon(_ context.Context, _ model.CreatePokemon) (model.Pokemon, error) {
	return s.out, s.err
}
func (s *stubPokemonService) UpdatePokemon(_ context.Context, id int64, _ model.UpdatePokemon) (model.Pokemon, error) {
	s.gotID = id
	return s.out, s.err
}
func (s *stubPokemonService) PatchPokemon(_ context.Context, id int64, in model.PatchPokemon) (model.Pokemon, error) {
	s.gotID, s.patch = id, in
	return s.out, s.err
}
func (s *stubPokemonService) DeletePokemon(_ context.Context, id int64) error {
	s.gotID = id
	return s.err
}
func (s *stubPokemonService) ImportPokemons(_ context.Context, in []model.CreatePokemon, _ bool) (int, error) {
	return len(in), s.err
}

func newRouter(svc service.PokemonService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := handler.NewRouter(handler.RouterOptions{Logger: zerolog.Nop()})
	handler.Register(r, stubPinger{}, svc)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) response.ErrorPayload {
	t.Helper()
	var p response.ErrorPayload
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode error payload: %v (%s)", err, w.Body.String())
	}
	return p
}

func TestPokemonHandler_List_ParsesQuery(t *testing.T) {
	stub := &stubPokemonService{listRes: model.PokemonsPage{Pokemons: []model.Pokemon{}, Page: 2, PageSize: 5}}
	r := newRouter(stub)
	w := do(r, http.MethodGet, "/api/v1/pokemons?page=2&page_size=5&name=saur&type=grass&generation=1&legendary=false", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	p := stub.listParams
	if p.Page == nil || *p.Page != 2 || p.PageSize == nil || *p.PageSize != 5 {
		t.Fatalf("unexpected paging params: %+v", p)
	}
	if p.Name != "saur" || p.Type != "grass" || p.Generation == nil || *p.Generation != 1 || p.Legendary == nil || *p.Legendary {
		t.Fatalf("unexpected filter params: %+v", p)
	}
	var page model.PokemonsPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Page != 2 || page.PageSize != 5 || page.Pokemons == nil {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPokemonHandler_List_AbsentParamsAreNil(t *testing.T) {
	stub := &stubPokemonService{}
	w := do(newRouter(stub), http.MethodGet, "/api/v1/pokemons", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if stub.listParams.Page != nil || stub.listParams.PageSize != nil || stub.listParams.Legendary != nil {
		t.Fatalf("expected nil params, got %+v", stub.listParams)
	}
}

func TestPokemonHandler_List_BadQuery(t *testing.T) {
	for _, q := range []string{"page=abc", "page_size=1.5", "legendary=maybe", "generation=x"} {
		t.Run(q, func(t *testing.T) {
			w := do(newRouter(&stubPokemonService{}), http.MethodGet, "/api/v1/pokemons?"+q, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			p := decodeErr(t, w)
			if p.Error != "invalid_input" || len(p.FieldErrors) != 1 {
				t.Fatalf("unexpected payload: %+v", p)
			}
		})
	}
}

func TestPokemonHandler_List_ServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&fakeInvalid{kind: service.ErrInvalidInput, fe: []service.FieldError{{Field: "page", Message: "must be >= 1"}}}, http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := do(newRouter(&stubPokemonService{listErr: tc.err}), http.MethodGet, "/api/v1/pokemons", "")
		if w.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, w.Code)
		}
	}
}

func TestPokemonHandler_Create(t *testing.T) {
	stub := &stubPokemonService{out: model.Pokemon{ID: 7, Name: "Bulbasaur"}}
	body, _ := json.Marshal(map[string]any{"number": 1, "name": "Bulbasaur", "type_1": "Grass", "legendary": false})
	w := do(newRouter(stub), http.MethodPost, "/api/v1/pokemons", string(body))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var got model.Pokemon
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID != 7 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPokemonHandler_Create_MalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      `{"name":`,
		"unknown field": `{"name":"x","colour":"green"}`,
		"wrong type":    `{"hp":"lots"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(newRouter(&stubPokemonService{}), http.MethodPost, "/api/v1/pokemons", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if p := decodeErr(t, w); p.Error != "invalid_body" {
				t.Fatalf("unexpected payload: %+v", p)
			}
		})
	}
}

func TestPokemonHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &fakeInvalid{kind: service.ErrValidation, fe: []service.FieldError{{Field: "hp", Message: "must be >= 1"}}}, http.StatusUnprocessableEntity},
		{"duplicate", repository.ErrAlreadyExists, http.StatusConflict},
		{"constraint", repository.ErrConstraint, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newRouter(&stubPokemonService{err: tc.err}), http.MethodPost, "/api/v1/pokemons", `{"name":"x"}`)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestPokemonHandler_GetByID(t *testing.T) {
	stub := &stubPokemonService{out: model.Pokemon{ID: 3}}
	w := do(newRouter(stub), http.MethodGet, "/api/v1/pokemons/3", "")
	if w.Code != http.StatusOK || stub.gotID != 3 {
		t.Fatalf("expected 200 for id 3, got %d id=%d", w.Code, stub.gotID)
	}

	w = do(newRouter(&stubPokemonService{err: repository.ErrNotFound}), http.MethodGet, "/api/v1/pokemons/99", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = do(newRouter(&stubPokemonService{}), http.MethodGet, "/api/v1/pokemons/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPokemonHandler_Patch_TriStateType2(t *testing.T) {
	stub := &stubPokemonService{out: model.Pokemon{ID: 1}}
	r := newRouter(stub)

	w := do(r, http.MethodPatch, "/api/v1/pokemons/1", `{"type_2":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !stub.patch.Type2.Set || stub.patch.Type2.Value != nil {
		t.Fatalf("expected explicit null, got %+v", stub.patch.Type2)
	}

	w = do(r, http.MethodPatch, "/api/v1/pokemons/1", `{"name":"Ivysaur"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if stub.patch.Type2.Set || stub.patch.Name == nil || *stub.patch.Name != "Ivysaur" {
		t.Fatalf("expected absent type_2 and a name, got %+v", stub.patch)
	}
}

func TestPokemonHandler_UpdateAndDelete(t *testing.T) {
	stub := &stubPokemonService{out: model.Pokemon{ID: 4}}
	r := newRouter(stub)
	w := do(r, http.MethodPut, "/api/v1/pokemons/4", `{"number":1,"name":"Venusaur","type_1":"Grass","legendary":false}`)
	if w.Code != http.StatusOK || stub.gotID != 4 {
		t.Fatalf("put: %d id=%d", w.Code, stub.gotID)
	}

	w = do(r, http.MethodDelete, "/api/v1/pokemons/4", "")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("delete: expected empty 204, got %d %q", w.Code, w.Body.String())
	}
}
