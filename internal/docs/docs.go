// Package docs registra la definición OpenAPI servida en /swagger/*.
// Formato de swag init; regenerar con `swag init -g cmd/api/main.go -o internal/docs` al cambiar anotaciones.
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
        "/notifications": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Crear notificación",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notifications.createRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/httpjson.Ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/notifications/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Listar notificaciones de un usuario",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true, "description": "user id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/notifications.notificationResponse"}}}
                }
            },
            "put": {
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Marcar notificación como leída",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpjson.Ack"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/notifications/{id}/respond": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Responder solicitud de adopción",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notifications.respondRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/notifications.notificationResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/notifications/mark-all/{id}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Marcar todas como leídas",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true, "description": "user id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpjson.Ack"}}
                }
            }
        },
        "/pets/{petID}/interest": {
            "post": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Expresar interés en adoptar",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.interestResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/messages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Enviar mensaje",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/messages.sendRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/httpjson.Ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/messages/threads/{userID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Listar conversaciones",
                "parameters": [{"type": "string", "name": "userID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/messages.threadResponse"}}}
                }
            }
        },
        "/messages/{userA}/{userB}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Conversación entre dos usuarios",
                "parameters": [
                    {"type": "string", "name": "userA", "in": "path", "required": true},
                    {"type": "string", "name": "userB", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/messages.messageResponse"}}}
                }
            }
        }
    },
    "definitions": {
        "httpjson.ErrorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "httpjson.Ack": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "id": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "notifications.createRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["interest", "adoption", "confirmation", "rejection", "system"]},
                "message": {"type": "string"},
                "petId": {"type": "string"},
                "fromUserId": {"type": "string"},
                "toUserId": {"type": "string"}
            }
        },
        "notifications.respondRequest": {
            "type": "object",
            "properties": {"decision": {"type": "string", "enum": ["accept", "reject"]}}
        },
        "notifications.notificationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "message": {"type": "string"},
                "petId": {"type": "string"},
                "fromUserId": {"type": "string"},
                "toUserId": {"type": "string"},
                "isRead": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "pets.interestResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "message": {"type": "string"},
                "petId": {"type": "string"},
                "toUserId": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "messages.sendRequest": {
            "type": "object",
            "properties": {
                "senderId": {"type": "string"},
                "receiverId": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "messages.messageResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "senderId": {"type": "string"},
                "receiverId": {"type": "string"},
                "content": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "messages.threadResponse": {
            "type": "object",
            "properties": {
                "counterpartId": {"type": "string"},
                "name": {"type": "string"},
                "profileImage": {"type": "string"},
                "lastMessageAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Adoption Marketplace API",
	Description:      "Catálogo de mascotas, notificaciones de adopción y chat entre usuarios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
