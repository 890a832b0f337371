// Package docs holds the OpenAPI description served at /swagger.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange the owner password for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/day": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["day"],
                "summary": "Active day with totals and category groups",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/day/save": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["day"],
                "summary": "Archive the active day under a date and start a fresh one",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "507": {"description": "Storage full"}}
            }
        },
        "/meals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["meals"],
                "summary": "Meal library",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["history"],
                "summary": "Archived days, newest first",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/settings/goals": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["settings"],
                "summary": "Replace the daily goals",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/stats/weekly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Calories against goal for the days ending at end_date",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "end_date", "in": "query"},
                    {"type": "integer", "name": "days", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/imports/extract": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["imports"],
                "summary": "Read meals from an uploaded diet plan for review",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}, "502": {"description": "Extraction failed"}, "503": {"description": "Extraction not configured"}}
            }
        }
    },
    "definitions": {
        "loginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {"password": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Diet API",
	Description:      "Personal diet tracking: meal library, daily log, history and meal import.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
