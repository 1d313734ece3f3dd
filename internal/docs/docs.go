// Package docs holds the OpenAPI document served by Swagger UI.
// Keep it in sync with the godoc annotations in internal/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Greeting",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/pokemons": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pokemons"],
                "summary": "List pokemons",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "1-based page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "entries per page, max 100", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "substring match on name", "name": "name", "in": "query"},
                    {"type": "string", "description": "matches either type slot", "name": "type", "in": "query"},
                    {"type": "integer", "description": "generation 1-9", "name": "generation", "in": "query"},
                    {"type": "boolean", "description": "legendary flag", "name": "legendary", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PokemonsPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pokemons"],
                "summary": "Create a pokemon",
                "parameters": [
                    {"description": "new entry", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreatePokemon"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Pokemon"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorPayload"}}
                }
            }
        },
        "/api/v1/pokemons/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pokemons"],
                "summary": "Get a pokemon",
                "parameters": [{"type": "integer", "description": "pokemon id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Pokemon"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorPayload"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pokemons"],
                "summary": "Replace a pokemon",
                "parameters": [
                    {"type": "integer", "description": "pokemon id", "name": "id", "in": "path", "required": true},
                    {"description": "replacement", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreatePokemon"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Pokemon"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorPayload"}}
                }
            },
            "patch": {
                "description": "Only the fields present in the body change; \"type_2\": null clears the second type.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pokemons"],
                "summary": "Partially update a pokemon",
                "parameters": [
                    {"type": "integer", "description": "pokemon id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.PatchPokemon"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Pokemon"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorPayload"}}
                }
            },
            "delete": {
                "tags": ["pokemons"],
                "summary": "Delete a pokemon",
                "parameters": [{"type": "integer", "description": "pokemon id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "model.Pokemon": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "number": {"type": "integer"},
                "name": {"type": "string"},
                "type_1": {"type": "string"},
                "type_2": {"type": "string"},
                "total": {"type": "integer"},
                "hp": {"type": "integer"},
                "attack": {"type": "integer"},
                "defense": {"type": "integer"},
                "sp_atk": {"type": "integer"},
                "sp_def": {"type": "integer"},
                "speed": {"type": "integer"},
                "generation": {"type": "integer"},
                "legendary": {"type": "boolean"}
            }
        },
        "model.CreatePokemon": {
            "type": "object",
            "required": ["name", "type_1", "legendary"],
            "properties": {
                "number": {"type": "integer", "minimum": 1},
                "name": {"type": "string", "maxLength": 100},
                "type_1": {"type": "string"},
                "type_2": {"type": "string"},
                "total": {"type": "integer", "minimum": 1},
                "hp": {"type": "integer", "minimum": 1},
                "attack": {"type": "integer", "minimum": 1},
                "defense": {"type": "integer", "minimum": 1},
                "sp_atk": {"type": "integer", "minimum": 1},
                "sp_def": {"type": "integer", "minimum": 1},
                "speed": {"type": "integer", "minimum": 1},
                "generation": {"type": "integer", "minimum": 1, "maximum": 9},
                "legendary": {"type": "boolean"}
            }
        },
        "model.PatchPokemon": {
            "type": "object",
            "properties": {
                "number": {"type": "integer", "minimum": 1},
                "name": {"type": "string", "maxLength": 100},
                "type_1": {"type": "string"},
                "type_2": {"type": "string", "x-nullable": true},
                "total": {"type": "integer", "minimum": 1},
                "hp": {"type": "integer", "minimum": 1},
                "attack": {"type": "integer", "minimum": 1},
                "defense": {"type": "integer", "minimum": 1},
                "sp_atk": {"type": "integer", "minimum": 1},
                "sp_def": {"type": "integer", "minimum": 1},
                "speed": {"type": "integer", "minimum": 1},
                "generation": {"type": "integer", "minimum": 1, "maximum": 9},
                "legendary": {"type": "boolean"}
            }
        },
        "model.PokemonsPage": {
            "type": "object",
            "properties": {
                "pokemons": {"type": "array", "items": {"$ref": "#/definitions/model.Pokemon"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "response.ErrorPayload": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "field_errors": {"type": "array", "items": {"$ref": "#/definitions/service.FieldError"}}
            }
        },
        "service.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pokedex Service API",
	Description:      "CRUD catalog of Pokemon with paginated listing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
