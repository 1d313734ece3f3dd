package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/pokedex-service/internal/config"
	"github.com/maxviazov/pokedex-service/internal/handler"
	"github.com/maxviazov/pokedex-service/internal/metrics"
	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
	"github.com/maxviazov/pokedex-service/internal/repository/sqlite"
	"github.com/maxviazov/pokedex-service/internal/service"
	dbtest "github.com/maxviazov/pokedex-service/internal/testutil"
)

type stack struct {
	router  *gin.Engine
	faults  *paginate.SwitchableFault
	metrics *metrics.Metrics
}

// newStack wires the real service on an in-memory SQLite database.
func newStack(t *testing.T) stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.NewSQLite(t)
	log := zerolog.Nop()
	m := metrics.New()
	faults := paginate.NewSwitchableFault()
	pager := paginate.New(paginate.WithLogger(log), paginate.WithObserver(m), paginate.WithFaultInjector(faults))

	svc := service.NewPokemonService(
		sqlite.NewPokemonRepository(db, pager),
		sqlite.NewTxManager(db),
		config.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100},
		log,
	)
	r := handler.NewRouter(handler.RouterOptions{Logger: log, Metrics: m})
	handler.Register(r, sqlite.NewPinger(db), svc)
	return stack{router: r, faults: faults, metrics: m}
}

func createBody(number int, name string) string {
	return fmt.Sprintf(`{"number":%d,"name":%q,"type_1":"Water","total":300,"hp":40,"attack":40,"defense":40,"sp_atk":40,"sp_def":40,"speed":40,"generation":1,"legendary":false}`, number, name)
}

func listPage(t *testing.T, r http.Handler, query string) model.PokemonsPage {
	t.Helper()
	w := do(r, http.MethodGet, "/api/v1/pokemons?"+query, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page model.PokemonsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestE2E_EmptyTable(t *testing.T) {
	s := newStack(t)
	page := listPage(t, s.router, "page=1&page_size=10")
	assert.Empty(t, page.Pokemons)
	assert.NotNil(t, page.Pokemons)
	assert.Equal(t, int64(0), page.TotalPages)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.PageLoads("fallback")))
}

func TestE2E_PagesAndPastEnd(t *testing.T) {
	s := newStack(t)
	for i := 10; i >= 1; i-- {
		w := do(s.router, http.MethodPost, "/api/v1/pokemons", createBody(i, fmt.Sprintf("Mon%02d", i)))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	first := listPage(t, s.router, "page=1&page_size=5")
	second := listPage(t, s.router, "page=2&page_size=5")
	past := listPage(t, s.router, "page=3&page_size=5")

	var numbers []int32
	for _, p := range append(first.Pokemons, second.Pokemons...) {
		numbers = append(numbers, p.Number)
	}
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, numbers)
	assert.Equal(t, int64(2), first.TotalPages)
	assert.Equal(t, int64(2), second.TotalPages)
	assert.Empty(t, past.Pokemons)
	assert.Equal(t, int64(2), past.TotalPages)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.PageLoads("window")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.PageLoads("fallback")))
}

func TestE2E_HugePageNumbers(t *testing.T) {
	s := newStack(t)
	for i := 1; i <= 10; i++ {
		w := do(s.router, http.MethodPost, "/api/v1/pokemons", createBody(i, fmt.Sprintf("Mon%02d", i)))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := do(s.router, http.MethodGet, "/api/v1/pokemons?page=4611686018427387905&page_size=4", "")
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	p := decodeErr(t, w)
	assert.Equal(t, "invalid_input", p.Error)
	require.Len(t, p.FieldErrors, 1)
	assert.Equal(t, "page", p.FieldErrors[0].Field)

	// largest page whose offset still fits in a BIGINT
	page := listPage(t, s.router, "page=2305843009213693952&page_size=4")
	assert.Empty(t, page.Pokemons)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, int64(2305843009213693952), page.Page)
}

func TestE2E_DefaultsAndClamp(t *testing.T) {
	s := newStack(t)
	page := listPage(t, s.router, "")
	assert.Equal(t, int64(1), page.Page)
	assert.Equal(t, int64(10), page.PageSize)

	page = listPage(t, s.router, "page_size=5000")
	assert.Equal(t, int64(100), page.PageSize)

	w := do(s.router, http.MethodGet, "/api/v1/pokemons?page_size=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestE2E_FaultInjection(t *testing.T) {
	s := newStack(t)
	s.faults.Set(func() error { return errors.New("connection reset by peer") })

	w := do(s.router, http.MethodGet, "/api/v1/pokemons?page=1&page_size=10", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	p := decodeErr(t, w)
	assert.Equal(t, "internal_error", p.Error)
	assert.Empty(t, p.Details)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.PageLoads("error")))

	s.faults.Reset()
	page := listPage(t, s.router, "page=1&page_size=10")
	assert.Empty(t, page.Pokemons)
}

func TestE2E_CRUD(t *testing.T) {
	s := newStack(t)
	r := s.router

	w := do(r, http.MethodPost, "/api/v1/pokemons", createBody(7, "Squirtle"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Pokemon
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/v1/pokemons/%d", created.ID)

	w = do(r, http.MethodPost, "/api/v1/pokemons", createBody(8, "Squirtle"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/v1/pokemons", `{"number":9,"name":"Wartortle","type_1":"Water","hp":0,"generation":1,"legendary":false}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPatch, path, `{"type_2":"ice"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var patched model.Pokemon
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	require.NotNil(t, patched.Type2)
	assert.Equal(t, "Ice", *patched.Type2)

	w = do(r, http.MethodPatch, path, `{"type_2":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.Nil(t, patched.Type2)

	w = do(r, http.MethodPut, path, createBody(7, "Blastoise"))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestE2E_Filters(t *testing.T) {
	s := newStack(t)
	do(s.router, http.MethodPost, "/api/v1/pokemons", createBody(1, "Psyduck"))
	do(s.router, http.MethodPost, "/api/v1/pokemons", createBody(2, "Golduck"))
	do(s.router, http.MethodPost, "/api/v1/pokemons", createBody(3, "Magikarp"))

	page := listPage(t, s.router, "name=duck")
	require.Len(t, page.Pokemons, 2)
	assert.Equal(t, int64(1), page.TotalPages)

	page = listPage(t, s.router, "type=fire")
	assert.Empty(t, page.Pokemons)
	assert.Equal(t, int64(0), page.TotalPages)

	w := do(s.router, http.MethodGet, "/api/v1/pokemons?type=plasma", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
