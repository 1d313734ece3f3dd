package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/pokedex-service/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, pokemonSvc service.PokemonService) {
	h := NewHealthHandler(repo)

	r.GET("/", hello)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewPokemonHandler(pokemonSvc).Register(api)
	}
}

// hello godoc
// @Summary  Greeting
// @Tags     meta
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   / [get]
func hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Pokedex!"})
}
