// Package docs registers the Swagger specification served under /swagger/.
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
        "/account/delegate-access/requests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["delegate-access"],
                "summary": "List delegations involving an organization",
                "parameters": [
                    {"type": "string", "name": "orgId", "in": "query", "required": true},
                    {"type": "string", "name": "X-Actor-Address", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/account/delegate-access/request": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["delegate-access"],
                "summary": "Request delegated admin access to another organization",
                "parameters": [
                    {"type": "string", "name": "X-Actor-Address", "in": "header", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/account/delegate-access/accept": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["delegate-access"],
                "summary": "Accept a pending delegation with its auth token",
                "parameters": [
                    {"type": "string", "name": "X-Actor-Address", "in": "header", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/account/delegate-access/revoke": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["delegate-access"],
                "summary": "Revoke an accepted delegation",
                "parameters": [
                    {"type": "string", "name": "X-Actor-Address", "in": "header", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/organizations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["organizations"],
                "summary": "List organizations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/organizations/{org_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["organizations"],
                "summary": "Get one organization",
                "parameters": [
                    {"type": "string", "name": "org_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/organizations/{org_id}/members": {
            "get": {
                "produces": ["application/json"],
                "tags": ["organizations"],
                "summary": "List an organization's member roster",
                "parameters": [
                    {"type": "string", "name": "org_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-Actor-Address", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "JobDeck API",
	Description:      "Organization directory and cross-organization delegated access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
