package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/service"
	"github.com/maxviazov/pokedex-service/pkg/response"
)

type PokemonHandler struct {
	svc service.PokemonService
}

func NewPokemonHandler(svc service.PokemonService) *PokemonHandler {
	return &PokemonHandler{svc: svc}
}

func (h *PokemonHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/pokemons")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.PATCH("/:id", h.patch)
		g.DELETE("/:id", h.delete)
	}
}

// list godoc
// @Summary  List pokemons
// @Tags     pokemons
// @Produce  json
// @Param    page       query int    false "1-based page number"   default(1)
// @Param    page_size  query int    false "entries per page, max 100" default(10)
// @Param    name       query string false "substring match on name"
// @Param    type       query string false "matches either type slot"
// @Param    generation query int    false "generation 1-9"
// @Param    legendary  query bool   false "legendary flag"
// @Success  200 {object} model.PokemonsPage
// @Failure  400 {object} response.ErrorPayload
// @Failure  500 {object} response.ErrorPayload
// @Router   /api/v1/pokemons [get]
func (h *PokemonHandler) list(c *gin.Context) {
	var (
		params service.ListParams
		ferrs  []service.FieldError
	)
	params.Page = queryInt64(c, "page", &ferrs)
	params.PageSize = queryInt64(c, "page_size", &ferrs)
	if g := queryInt64(c, "generation", &ferrs); g != nil {
		gen := int32(*g)
		if int64(gen) != *g {
			ferrs = append(ferrs, service.FieldError{Field: "generation", Message: "out of range"})
		}
		params.Generation = &gen
	}
	if raw, ok := c.GetQuery("legendary"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "legendary", Message: "must be a boolean"})
		} else {
			params.Legendary = &v
		}
	}
	params.Name = c.Query("name")
	params.Type = c.Query("type")
	if len(ferrs) > 0 {
		response.WriteError(c, service.NewInvalidInputError(ferrs...))
		return
	}

	res, err := h.svc.ListPokemons(c.Request.Context(), params)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

// create godoc
// @Summary  Create a pokemon
// @Tags     pokemons
// @Accept   json
// @Produce  json
// @Param    body body model.CreatePokemon true "new entry"
// @Success  201 {object} model.Pokemon
// @Failure  400 {object} response.ErrorPayload
// @Failure  409 {object} response.ErrorPayload
// @Failure  422 {object} response.ErrorPayload
// @Router   /api/v1/pokemons [post]
func (h *PokemonHandler) create(c *gin.Context) {
	var req model.CreatePokemon
	if !bindBody(c, &req) {
		return
	}
	out, err := h.svc.CreatePokemon(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, out)
}

// getByID godoc
// @Summary  Get a pokemon
// @Tags     pokemons
// @Produce  json
// @Param    id path int true "pokemon id"
// @Success  200 {object} model.Pokemon
// @Failure  400 {object} response.ErrorPayload
// @Failure  404 {object} response.ErrorPayload
// @Router   /api/v1/pokemons/{id} [get]
func (h *PokemonHandler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.svc.GetPokemon(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

// update godoc
// @Summary  Replace a pokemon
// @Tags     pokemons
// @Accept   json
// @Produce  json
// @Param    id   path int                true "pokemon id"
// @Param    body body model.CreatePokemon true "replacement"
// @Success  200 {object} model.Pokemon
// @Failure  400 {object} response.ErrorPayload
// @Failure  404 {object} response.ErrorPayload
// @Failure  409 {object} response.ErrorPayload
// @Failure  422 {object} response.ErrorPayload
// @Router   /api/v1/pokemons/{id} [put]
func (h *PokemonHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.UpdatePokemon
	if !bindBody(c, &req) {
		return
	}
	out, err := h.svc.UpdatePokemon(c.Request.Context(), id, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

// patch godoc
// @Summary  Partially update a pokemon
// @Description Only the fields present in the body change; "type_2": null clears the second type.
// @Tags     pokemons
// @Accept   json
// @Produce  json
// @Param    id   path int               true "pokemon id"
// @Param    body body model.PatchPokemon true "fields to change"
// @Success  200 {object} model.Pokemon
// @Failure  400 {object} response.ErrorPayload
// @Failure  404 {object} response.ErrorPayload
// @Failure  422 {object} response.ErrorPayload
// @Router   /api/v1/pokemons/{id} [patch]
func (h *PokemonHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.PatchPokemon
	if !bindBody(c, &req) {
		return
	}
	out, err := h.svc.PatchPokemon(c.Request.Context(), id, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

// delete godoc
// @Summary  Delete a pokemon
// @Tags     pokemons
// @Param    id path int true "pokemon id"
// @Success  204
// @Failure  400 {object} response.ErrorPayload
// @Failure  404 {object} response.ErrorPayload
// @Router   /api/v1/pokemons/{id} [delete]
func (h *PokemonHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePokemon(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError(service.FieldError{Field: "id", Message: "must be an integer"}))
		return 0, false
	}
	return id, true
}

func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.WriteError(c, fmt.Errorf("%w: %v", response.ErrMalformedBody, err))
		return false
	}
	return true
}

// queryInt64 returns nil when the key is absent and records a field error when it is not an integer.
func queryInt64(c *gin.Context, key string, ferrs *[]service.FieldError) *int64 {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*ferrs = append(*ferrs, service.FieldError{Field: key, Message: "must be an integer"})
		return nil
	}
	return &v
}
