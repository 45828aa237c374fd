package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Roll Inventory API",
        "description": "Inventory tracking for material rolls",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Rolls", "description": "Roll inventory and statistics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/rolls": {
            "get": {
                "tags": ["Rolls"],
                "summary": "List rolls",
                "parameters": [
                    {"name": "length_min", "in": "query", "type": "number"},
                    {"name": "length_max", "in": "query", "type": "number"},
                    {"name": "weight_min", "in": "query", "type": "number"},
                    {"name": "weight_max", "in": "query", "type": "number"},
                    {"name": "date_added_min", "in": "query", "type": "string"},
                    {"name": "date_added_max", "in": "query", "type": "string"},
                    {"name": "date_removed_min", "in": "query", "type": "string"},
                    {"name": "date_removed_max", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rolls"],
                "summary": "Register a roll",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRollRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rolls/{id}": {
            "get": {
                "tags": ["Rolls"],
                "summary": "Get roll",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rolls"],
                "summary": "Soft-delete roll",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Already removed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rolls/stats": {
            "get": {
                "tags": ["Rolls"],
                "summary": "Aggregate statistics over a date window",
                "parameters": [
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Roll": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "length": {"type": "number"},
                "weight": {"type": "number"},
                "date_added": {"type": "string"},
                "date_removed": {"type": "string"}
            }
        },
        "RollStats": {
            "type": "object",
            "properties": {
                "added_count": {"type": "integer"},
                "removed_count": {"type": "integer"},
                "avg_length": {"type": "number"},
                "avg_weight": {"type": "number"},
                "min_length": {"type": "number"},
                "max_length": {"type": "number"},
                "min_weight": {"type": "number"},
                "max_weight": {"type": "number"},
                "total_weight": {"type": "number"},
                "min_gap": {"type": "number"},
                "max_gap": {"type": "number"}
            }
        },
        "CreateRollRequest": {
            "type": "object",
            "properties": {
                "length": {"type": "number"},
                "weight": {"type": "number"}
            },
            "required": ["length", "weight"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
