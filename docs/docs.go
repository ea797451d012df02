// Package docs registers the OpenAPI description served under /swagger/*.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/users/register": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Update personal data", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/users/validate": {
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Verify the account", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/users/login": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["users"], "summary": "Current user", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["users"], "summary": "Delete account", "parameters": [{"type": "string", "description": "false for a hard delete", "name": "soft", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/users/company": {
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Update company data", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/users/logo": {
            "patch": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "produces": ["application/json"], "tags": ["users"], "summary": "Upload logo", "parameters": [{"type": "file", "description": "Logo image", "name": "image", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/users/invite": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Invite a guest", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}
        },
        "/password/getToken": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["password"], "summary": "Request a password reset token", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/password/changePassword": {
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["password"], "summary": "Change password", "responses": {"200": {"description": "OK"}, "401": {"description": "NOT_TOKEN or NOT_SESSION"}}}
        },
        "/client": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["clients"], "summary": "List clients", "parameters": [{"type": "string", "description": "active (default), deleted or all", "name": "scope", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["clients"], "summary": "Create a client", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/client/{id}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["clients"], "summary": "Get a client", "parameters": [{"type": "string", "description": "Client id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["clients"], "summary": "Update a client", "parameters": [{"type": "string", "description": "Client id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}},
            "delete": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["clients"], "summary": "Delete a client", "parameters": [{"type": "string", "description": "Client id", "name": "id", "in": "path", "required": true}, {"type": "string", "description": "false for a hard delete", "name": "soft", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/client/restore/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["clients"], "summary": "Restore a soft-deleted client", "parameters": [{"type": "string", "description": "Client id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/projects": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["projects"], "summary": "List projects", "parameters": [{"type": "string", "description": "active (default), deleted or all", "name": "scope", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["projects"], "summary": "Create a project", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/projects/{id}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["projects"], "summary": "Get a project", "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["projects"], "summary": "Update a project", "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["projects"], "summary": "Delete a project", "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}, {"type": "string", "description": "false for a hard delete", "name": "soft", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/projects/restore/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["projects"], "summary": "Restore a soft-deleted project", "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/deliverynotes": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["deliverynotes"], "summary": "List delivery notes", "parameters": [{"type": "string", "description": "active (default), deleted or all", "name": "scope", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["deliverynotes"], "summary": "Create a delivery note", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/deliverynotes/{id}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["deliverynotes"], "summary": "Get a delivery note", "parameters": [{"type": "string", "description": "Delivery note id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["deliverynotes"], "summary": "Delete a delivery note", "parameters": [{"type": "string", "description": "Delivery note id", "name": "id", "in": "path", "required": true}, {"type": "string", "description": "false for a hard delete", "name": "soft", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/deliverynotes/pdf/{id}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/pdf"], "tags": ["deliverynotes"], "summary": "Download a delivery note as PDF", "parameters": [{"type": "string", "description": "Delivery note id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "404": {"description": "Not Found"}}}
        },
        "/deliverynotes/sign": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["deliverynotes"], "summary": "Sign a delivery note", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}, "500": {"description": "Internal Server Error"}}}
        },
        "/deliverynotes/restore/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["deliverynotes"], "summary": "Restore a soft-deleted delivery note", "parameters": [{"type": "string", "description": "Delivery note id", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Delivery Notes API",
	Description:      "Users, clients, projects and signed delivery notes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
