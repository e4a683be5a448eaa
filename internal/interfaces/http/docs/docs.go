// Package docs registers the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "WebhookSignature": {"type": "apiKey", "name": "X-Payment-Signature", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}
        },
        "/blocks": {
            "get": {
                "tags": ["catalog"],
                "summary": "List blocks with prices and the caller's ownership",
                "parameters": [{"name": "business_id", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "Resolved blocks in display order"}, "503": {"description": "Catalog unavailable"}}
            }
        },
        "/checkout": {
            "post": {
                "tags": ["checkout"],
                "summary": "Unlock free blocks or open a checkout session for paid ones",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectAndCheckoutRequest"}}],
                "responses": {"200": {"description": "Blocks unlocked or checkout session created"}, "400": {"description": "Mixed one-time and monthly cart"}, "409": {"description": "Block already owned"}}
            }
        },
        "/subscriptions": {
            "get": {
                "tags": ["subscriptions"],
                "summary": "List the caller's subscriptions",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "business_id", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/subscriptions/{id}/change": {
            "post": {
                "tags": ["subscriptions"],
                "summary": "Upgrade, downgrade or switch a subscription to one-time",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeSubscriptionRequest"}}
                ],
                "responses": {"200": {"description": "Proration amount or checkout URL"}, "404": {"description": "Subscription not found"}, "409": {"description": "Subscription not changeable"}}
            }
        },
        "/subscriptions/{id}/cancel": {
            "post": {
                "tags": ["subscriptions"],
                "summary": "Cancel at period end",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Cancellation scheduled"}, "409": {"description": "Already cancelled"}}
            }
        },
        "/webhooks/payments": {
            "post": {
                "tags": ["webhooks"],
                "summary": "Payment processor events",
                "security": [{"WebhookSignature": []}],
                "responses": {"200": {"description": "Processed or ignored"}, "401": {"description": "Invalid signature"}}
            }
        },
        "/admin/pricing": {
            "get": {"tags": ["admin"], "summary": "List pricing records", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/pricing/{block_name}": {
            "put": {
                "tags": ["admin"],
                "summary": "Create or replace the pricing of a block",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "block_name", "in": "path", "required": true, "type": "string"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertPricingRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Pricing invariant violated"}, "404": {"description": "Unknown block"}}
            }
        },
        "/admin/payment-failures": {
            "get": {
                "tags": ["admin"],
                "summary": "List payment failures",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["open", "resolved"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "email", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/payment-failures/{id}/remind": {
            "post": {
                "tags": ["admin"],
                "summary": "Email a payment reminder",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Reminder queued"}, "409": {"description": "Reminder cooldown active"}}
            }
        },
        "/admin/payment-failures/{id}/resolve": {
            "post": {
                "tags": ["admin"],
                "summary": "Mark a payment failure resolved",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/subscriptions/sweep": {
            "post": {"tags": ["admin"], "summary": "Expire and cancel lapsed subscriptions", "security": [{"Bearer": []}], "responses": {"200": {"description": "Sweep counts"}}}
        }
    },
    "definitions": {
        "SelectAndCheckoutRequest": {
            "type": "object",
            "required": ["business_id", "block_names"],
            "properties": {
                "business_id": {"type": "integer"},
                "block_names": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ChangeSubscriptionRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["upgrade", "downgrade", "switch_to_one_time"]},
                "new_block_name": {"type": "string"}
            }
        },
        "UpsertPricingRequest": {
            "type": "object",
            "required": ["pricing_type"],
            "properties": {
                "price_cents": {"type": "integer"},
                "monthly_price_cents": {"type": "integer"},
                "pricing_type": {"type": "string", "enum": ["free", "one_time", "monthly"]},
                "is_free": {"type": "boolean"}
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
	Title:            "BizBlocks API",
	Description:      "Block catalog, checkout and subscription lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
