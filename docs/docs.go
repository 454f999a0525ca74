// Package docs registers the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g cmd/app/main.go
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
        "/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["state"],
                "summary": "Get simulator state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StateResponse"}}}
            }
        },
        "/inventory": {
            "get": {
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Get inventory",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.InventoryResponse"}}}
            }
        },
        "/cases": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "List cases",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CaseListResponse"}}}
            }
        },
        "/cases/{caseID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "Get a case",
                "parameters": [{"type": "string", "description": "Case id", "name": "caseID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CaseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/cases/{caseID}/open": {
            "post": {
                "description": "Deducts the price and draws an item. With wait=true the response is held until the reveal and carries the outcome; otherwise it returns 202 and the outcome arrives as a case.revealed event.",
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "Open a case",
                "parameters": [
                    {"type": "string", "description": "Case id", "name": "caseID", "in": "path", "required": true},
                    {"type": "boolean", "description": "Block until the outcome is revealed", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CaseOpening"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.PendingOpeningResponse"}},
                    "400": {"description": "Not enough gold", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Unknown case", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "An opening is already in progress", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/battle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["battle"],
                "summary": "Start a battle",
                "parameters": [{"type": "boolean", "description": "Block until the outcome is revealed", "name": "wait", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.BattleOutcome"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.PendingBattleResponse"}},
                    "409": {"description": "A battle is already in progress", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/harvest": {
            "post": {
                "produces": ["application/json"],
                "tags": ["harvest"],
                "summary": "Harvest a reward",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HarvestReward"}}}
            }
        },
        "/user": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}}}
            }
        },
        "/user/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Log in",
                "parameters": [{"description": "Display name", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}}
                }
            }
        },
        "/user/logout": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Log out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}}}
            }
        }
    },
    "definitions": {
        "domain.Balances": {
            "type": "object",
            "properties": {"gold": {"type": "integer"}, "silver": {"type": "integer"}}
        },
        "domain.Item": {
            "type": "object",
            "properties": {
                "collection": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "rarity": {"type": "string", "enum": ["legendary", "red", "blue", "common"]}
            }
        },
        "domain.Identity": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "picture": {"type": "string"}}
        },
        "domain.CaseOpening": {
            "type": "object",
            "properties": {
                "balances": {"$ref": "#/definitions/domain.Balances"},
                "case_id": {"type": "string"},
                "case_name": {"type": "string"},
                "currency": {"type": "string"},
                "draw": {"type": "number"},
                "id": {"type": "string"},
                "inventory_size": {"type": "integer"},
                "is_nothing": {"type": "boolean"},
                "item": {"$ref": "#/definitions/domain.Item"},
                "opened_at": {"type": "string"},
                "price": {"type": "integer"},
                "rarity": {"type": "string"},
                "reveal_at": {"type": "string"}
            }
        },
        "domain.BattleOutcome": {
            "type": "object",
            "properties": {
                "balances": {"$ref": "#/definitions/domain.Balances"},
                "gold_delta": {"type": "integer"},
                "id": {"type": "string"},
                "resolved_at": {"type": "string"},
                "result": {"type": "string", "enum": ["win", "lose"]},
                "reveal_at": {"type": "string"},
                "silver_delta": {"type": "integer"}
            }
        },
        "domain.HarvestReward": {
            "type": "object",
            "properties": {
                "balances": {"$ref": "#/definitions/domain.Balances"},
                "gold_delta": {"type": "integer"},
                "silver_delta": {"type": "integer"}
            }
        },
        "handler.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.SuccessResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "handler.ValidationErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "fields": {"type": "object", "additionalProperties": {"type": "string"}}}
        },
        "handler.LoginRequest": {"type": "object", "properties": {"name": {"type": "string", "maxLength": 64}}},
        "handler.UserResponse": {
            "type": "object",
            "properties": {"logged_in": {"type": "boolean"}, "user": {"$ref": "#/definitions/domain.Identity"}}
        },
        "handler.InventoryEntry": {
            "type": "object",
            "properties": {"item": {"$ref": "#/definitions/domain.Item"}, "position": {"type": "integer"}, "rarity_label": {"type": "string"}}
        },
        "handler.InventoryResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "items": {"type": "array", "items": {"$ref": "#/definitions/handler.InventoryEntry"}}}
        },
        "handler.StateResponse": {
            "type": "object",
            "properties": {
                "balances": {"$ref": "#/definitions/domain.Balances"},
                "formatted": {"type": "object", "properties": {"gold": {"type": "string"}, "silver": {"type": "string"}}},
                "in_flight": {"type": "object", "properties": {"battle": {"type": "boolean"}, "open_case": {"type": "boolean"}}},
                "inventory": {"$ref": "#/definitions/handler.InventoryResponse"},
                "user": {"$ref": "#/definitions/domain.Identity"}
            }
        },
        "lootbox.DropOdds": {
            "type": "object",
            "properties": {"item": {"$ref": "#/definitions/domain.Item"}, "probability": {"type": "number"}, "weight": {"type": "number"}}
        },
        "handler.CaseResponse": {
            "type": "object",
            "properties": {
                "currency": {"type": "string"},
                "drops": {"type": "array", "items": {"$ref": "#/definitions/lootbox.DropOdds"}},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "integer"},
                "price_formatted": {"type": "string"}
            }
        },
        "handler.CaseListResponse": {
            "type": "object",
            "properties": {"cases": {"type": "array", "items": {"$ref": "#/definitions/handler.CaseResponse"}}}
        },
        "handler.PendingOpeningResponse": {
            "type": "object",
            "properties": {
                "balances": {"$ref": "#/definitions/domain.Balances"},
                "case_id": {"type": "string"},
                "id": {"type": "string"},
                "message": {"type": "string"},
                "price": {"type": "integer"},
                "reveal_at": {"type": "string"}
            }
        },
        "handler.PendingBattleResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "message": {"type": "string"}, "reveal_at": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Case Simulator API",
	Description:      "Loot-box case opening and coin-flip battle simulator with a silver and gold economy.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
