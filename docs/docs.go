// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}},
        "/api/auth/verify": {"post": {"tags": ["auth"], "summary": "Verify an ID token and return the admin profile", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid token"}, "403": {"description": "Not an admin"}}}},
        "/api/admins": {
            "get": {"tags": ["admins"], "summary": "List admins", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admins"], "summary": "Create an admin", "responses": {"201": {"description": "Created"}}}
        },
        "/api/users": {"get": {"tags": ["users"], "summary": "List app users", "responses": {"200": {"description": "OK"}}}},
        "/api/users/{userId}/call-access": {"put": {"tags": ["users"], "summary": "Toggle call access", "responses": {"200": {"description": "OK"}}}},
        "/api/groups": {
            "get": {"tags": ["groups"], "summary": "List groups", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["groups"], "summary": "Create a group", "responses": {"201": {"description": "Created"}}}
        },
        "/api/groups/{groupId}/inner-groups": {
            "post": {"tags": ["groups"], "summary": "Add an inner group", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["groups"], "summary": "Replace inner groups", "responses": {"200": {"description": "OK"}}}
        },
        "/api/inner-groups": {
            "get": {"tags": ["inner-groups"], "summary": "List standalone inner groups", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["inner-groups"], "summary": "Create a standalone inner group", "responses": {"201": {"description": "Created"}}}
        },
        "/api/inner-groups/{id}/apply": {"post": {"tags": ["inner-groups"], "summary": "Copy into groups", "responses": {"200": {"description": "OK"}}}},
        "/api/chats": {"get": {"tags": ["chats"], "summary": "List chat summaries", "responses": {"200": {"description": "OK"}}}},
        "/api/chats/{chatId}": {
            "get": {"tags": ["chats"], "summary": "Resolve a chat and return its messages", "responses": {"200": {"description": "OK"}, "404": {"description": "Chat not found"}}},
            "delete": {"tags": ["chats"], "summary": "Delete a chat", "responses": {"200": {"description": "OK"}}}
        },
        "/api/notifications/send": {"post": {"tags": ["notifications"], "summary": "Send to one user or token", "responses": {"200": {"description": "OK"}}}},
        "/api/notifications/send-bulk": {"post": {"tags": ["notifications"], "summary": "Send to many users", "responses": {"200": {"description": "OK"}}}},
        "/api/notifications/logs": {"get": {"tags": ["notifications"], "summary": "Notification log", "responses": {"200": {"description": "OK"}}}},
        "/api/agora/token": {
            "get": {"tags": ["calls"], "summary": "Token server status", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["calls"], "summary": "Issue an RTC token", "responses": {"200": {"description": "OK"}}}
        },
        "/api/dashboard/stats": {"get": {"tags": ["dashboard"], "summary": "Dashboard counters", "responses": {"200": {"description": "OK"}}}},
        "/api/audit-logs": {"get": {"tags": ["audit"], "summary": "Audit trail", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Amigo Admin API",
	Description:      "Administration API for the Amigo chat app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
