// Package docs registers the OpenAPI document served under /swagger. It
// mirrors the godoc annotations on the handlers; regenerate it with swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register a new user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/refreshToken": {
            "post": {
                "tags": ["auth"], "summary": "Rotate a refresh token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.RefreshRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/revokeRefreshTokens": {
            "post": {
                "tags": ["auth"], "summary": "Logout by revoking a refresh token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.RefreshRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/valid_password": {
            "post": {
                "tags": ["auth"], "summary": "Check credentials without opening a session",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.ValidPasswordRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ValidPasswordResponse"}}
                }
            }
        },
        "/auth/verify_email": {
            "post": {
                "tags": ["auth"], "summary": "Send a password reset link",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.VerifyEmailRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/reset_password_link": {
            "post": {
                "tags": ["auth"], "summary": "Check a password reset link",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.ResetLinkRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/change_password": {
            "put": {
                "tags": ["auth"], "summary": "Set a new password through a reset link",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.ChangePasswordRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"], "summary": "Current user profile", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"], "summary": "List users", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"], "summary": "Create user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/handler.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.User"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"], "summary": "Get user by id", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"], "summary": "Update user, including role and status",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"], "summary": "Delete user",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"], "summary": "List categories", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Category"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"], "summary": "Create category",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "category", "required": true, "schema": {"$ref": "#/definitions/handler.CategoryRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Category"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"], "summary": "Rename category",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "category", "required": true, "schema": {"$ref": "#/definitions/handler.CategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Category"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"], "summary": "Delete category",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "code": {"type": "string"}}
        },
        "handler.Credentials": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.RegisterUserData": {
            "type": "object", "required": ["email", "password", "firstName", "lastName"],
            "properties": {
                "email": {"type": "string"}, "password": {"type": "string"},
                "firstName": {"type": "string"}, "lastName": {"type": "string"},
                "role": {"type": "string", "enum": ["SuperAdmin", "ProjectAdmin", "Manager", "Client"]},
                "location": {"type": "string"}, "status": {"type": "boolean"}, "birthAt": {"type": "string"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object", "required": ["registerUserData"],
            "properties": {"registerUserData": {"$ref": "#/definitions/handler.RegisterUserData"}}
        },
        "handler.LoginRequest": {
            "type": "object", "required": ["loginUserData"],
            "properties": {"loginUserData": {"$ref": "#/definitions/handler.Credentials"}}
        },
        "handler.ValidPasswordRequest": {
            "type": "object", "required": ["validPasswordData"],
            "properties": {"validPasswordData": {"$ref": "#/definitions/handler.Credentials"}}
        },
        "handler.RefreshRequest": {
            "type": "object", "required": ["refreshToken"],
            "properties": {"refreshToken": {"type": "string"}}
        },
        "handler.VerifyEmailRequest": {
            "type": "object", "required": ["verifyEmail"],
            "properties": {"verifyEmail": {"type": "object", "properties": {"email": {"type": "string"}}}}
        },
        "handler.ResetTokenData": {
            "type": "object", "required": ["id", "token"],
            "properties": {"id": {"type": "integer"}, "token": {"type": "string"}}
        },
        "handler.ResetLinkRequest": {
            "type": "object", "required": ["passwordResetToken"],
            "properties": {"passwordResetToken": {"$ref": "#/definitions/handler.ResetTokenData"}}
        },
        "handler.ChangePasswordRequest": {
            "type": "object", "required": ["password", "passwordResetToken"],
            "properties": {"password": {"type": "string"}, "passwordResetToken": {"$ref": "#/definitions/handler.ResetTokenData"}}
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {"accessToken": {"type": "string"}, "refreshToken": {"type": "string"}}
        },
        "handler.RegisterResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "accessToken": {"type": "string"}, "refreshToken": {"type": "string"}}
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "userInfo": {"$ref": "#/definitions/model.PublicProfile"},
                "accessToken": {"type": "string"}, "refreshToken": {"type": "string"}
            }
        },
        "handler.MessageResponse": {
            "type": "object", "properties": {"message": {"type": "string"}}
        },
        "handler.ValidPasswordResponse": {
            "type": "object", "properties": {"validPassword": {"type": "boolean"}}
        },
        "handler.CreateUserRequest": {
            "type": "object", "required": ["email", "password", "firstName", "lastName"],
            "properties": {
                "email": {"type": "string"}, "password": {"type": "string"},
                "firstName": {"type": "string"}, "lastName": {"type": "string"},
                "role": {"type": "string"}, "location": {"type": "string"}, "avatar": {"type": "string"},
                "status": {"type": "boolean"}, "birthAt": {"type": "string"}
            }
        },
        "handler.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}, "password": {"type": "string"},
                "firstName": {"type": "string"}, "lastName": {"type": "string"},
                "role": {"type": "string"}, "location": {"type": "string"}, "avatar": {"type": "string"},
                "status": {"type": "boolean"}, "birthAt": {"type": "string"}
            }
        },
        "handler.CategoryRequest": {
            "type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}
        },
        "handler.MeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"}, "avatar": {"type": "string"},
                "email": {"type": "string"}, "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.PublicProfile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"}, "avatar": {"type": "string"},
                "email": {"type": "string"}, "role": {"type": "string"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "firstName": {"type": "string"}, "lastName": {"type": "string"},
                "email": {"type": "string"}, "role": {"type": "string"}, "status": {"type": "boolean"},
                "location": {"type": "string"}, "avatar": {"type": "string"}, "birthAt": {"type": "string"},
                "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}
            }
        },
        "model.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"},
                "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "CMS API",
	Description:      "Authentication and role-based access control for the content-management backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
