// Package docs registers the OpenAPI document served at /swagger/*any.
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
        "/api/webhooks/github": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Webhooks"],
                "summary": "Webhook liveness",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "description": "Verifies X-Hub-Signature-256, records the delivery and queues allow-listed pull_request actions.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Webhooks"],
                "summary": "Receive a GitHub delivery",
                "parameters": [
                    {"type": "string", "description": "sha256=<hex HMAC of the raw body>", "name": "X-Hub-Signature-256", "in": "header"},
                    {"type": "string", "description": "Event type", "name": "X-GitHub-Event", "in": "header", "required": true},
                    {"type": "string", "description": "Delivery ID", "name": "X-GitHub-Delivery", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "Queued, ignored or already processed"},
                    "400": {"description": "Invalid JSON payload", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "401": {"description": "Invalid signature", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/admin/repo-configs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List repository configs",
                "parameters": [
                    {"type": "boolean", "description": "Only enabled configs", "name": "enabled_only", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "enabled_only must be a boolean", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Create or update a repository config",
                "parameters": [
                    {"description": "Repository config", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "repository_name is required", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/proposals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Proposals"],
                "summary": "List proposals",
                "parameters": [
                    {"type": "string", "description": "pending, accepted, rejected, superseded or all", "name": "status", "in": "query"},
                    {"type": "integer", "description": "1-100, default 10", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Author filter", "name": "authorId", "in": "query"},
                    {"type": "string", "description": "Document filter", "name": "targetDocId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Proposals"],
                "summary": "Submit a proposal",
                "parameters": [
                    {"description": "Proposal", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid proposal or quality rejection", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "Document not found", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "409": {"description": "Document has been updated", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/health": {"get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "API is healthy"}}}},
        "/ready": {"get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Readiness Check", "responses": {"200": {"description": "API is ready"}, "503": {"description": "Database unavailable"}}}},
        "/live": {"get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Liveness Check", "responses": {"200": {"description": "API is alive"}}}}
    },
    "definitions": {
        "response.ErrorBody": {
            "type": "object",
            "additionalProperties": true
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Knowledge Base Integration API",
	Description:      "GitHub pull request intake, repository ingestion configs and versioned documentation proposals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
