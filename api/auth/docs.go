// Package auth registers the generated OpenAPI document for the auth
// service. Regenerate with `swag init` after changing handler annotations.
package auth

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "JobDesk Team",
            "url": "https://github.com/jobdesk/jobdesk"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/csrf": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Fetch CSRF token",
                "responses": {
                    "200": {"description": "token and header name", "schema": {"$ref": "#/definitions/authsdk.CSRFResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Password login",
                "parameters": [
                    {"description": "credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "pending session", "schema": {"$ref": "#/definitions/authsdk.LoginResponse"}},
                    "400": {"description": "malformed body", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "401": {"description": "INVALID_CREDENTIALS", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/verify-2fa": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Verify TOTP code",
                "parameters": [
                    {"description": "6-digit code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.Verify2FARequest"}}
                ],
                "responses": {
                    "200": {"description": "authenticated session", "schema": {"$ref": "#/definitions/authsdk.Verify2FAResponse"}},
                    "401": {"description": "UNAUTHORIZED, NO_MFA or INVALID_TOTP", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "access cookie re-minted", "schema": {"$ref": "#/definitions/authsdk.RefreshResponse"}},
                    "401": {"description": "UNAUTHORIZED", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Logout",
                "responses": {
                    "204": {"description": "cookies cleared"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "new account", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "created user", "schema": {"$ref": "#/definitions/authsdk.UserInfo"}},
                    "400": {"description": "validation failure", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "403": {"description": "FORBIDDEN", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/password-reset/request": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Request password reset",
                "parameters": [
                    {"description": "account email", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.ResetRequestRequest"}}
                ],
                "responses": {
                    "200": {"description": "dev mode only", "schema": {"$ref": "#/definitions/authsdk.ResetRequestResponse"}},
                    "204": {"description": "production"}
                }
            }
        },
        "/auth/password-reset/confirm": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["Auth"],
                "summary": "Confirm password reset",
                "parameters": [
                    {"description": "token and new password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.ResetConfirmRequest"}}
                ],
                "responses": {
                    "204": {"description": "password updated"},
                    "400": {"description": "INVALID_TOKEN", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "user summaries", "schema": {"type": "array", "items": {"$ref": "#/definitions/authsdk.UserInfo"}}},
                    "403": {"description": "FORBIDDEN", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, checks", "schema": {"$ref": "#/definitions/authsdk.ReadyzResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/authsdk.ReadyzResponse"}}
                }
            }
        }
    },
    "definitions": {
        "authsdk.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "authsdk.CSRFResponse": {
            "type": "object",
            "properties": {
                "csrfToken": {"type": "string"},
                "headerName": {"type": "string"}
            }
        },
        "authsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "authsdk.LoginResponse": {
            "type": "object",
            "properties": {
                "mfaRequired": {"type": "boolean"},
                "otpauthUrl": {"type": "string"},
                "user": {"$ref": "#/definitions/authsdk.UserInfo"}
            }
        },
        "authsdk.Verify2FARequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}
            }
        },
        "authsdk.Verify2FAResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "roleName": {"type": "string"},
                "user": {"$ref": "#/definitions/authsdk.UserInfo"}
            }
        },
        "authsdk.RefreshResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "authsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "password": {"type": "string"},
                "roleId": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "authsdk.ResetRequestRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "authsdk.ResetRequestResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "authsdk.ResetConfirmRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "authsdk.UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "roleId": {"type": "string"},
                "roleName": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "authsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "authsdk.ReadyzResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "JobDesk Authentication Service API",
	Description:      "Cookie-based authentication for the JobDesk platform: password login with mandatory TOTP two-factor verification, short-lived access tokens with refresh rotation, CSRF double-submit protection, and role-based access control.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
