// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init --parseInternal
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
        "/api/leads": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["leads"],
                "summary": "Submit lead form",
                "parameters": [
                    {"description": "Lead form", "name": "lead", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object"}},
                    "409": {"description": "Conflict", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/barristas/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["barristas"],
                "summary": "Validate member phone",
                "parameters": [
                    {"description": "Phone", "name": "phoneValidation", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/pricing/academic": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Quote academic price",
                "parameters": [
                    {"description": "Academic selection", "name": "selection", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object"}}
                }
            }
        },
        "/api/payments/dispatch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Resolve payment widget",
                "parameters": [
                    {"description": "Selected option and method", "name": "dispatch", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object"}}
                }
            }
        },
        "/api/payments/paypal/capture": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Capture PayPal order",
                "parameters": [
                    {"description": "Approved order", "name": "paypalCapture", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "402": {"description": "Payment Required", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/payments/stripe/checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Start Stripe checkout",
                "parameters": [
                    {"description": "Purchase", "name": "stripeCheckout", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "402": {"description": "Payment Required", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/payments/transfer/receipt": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Upload bank receipt",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Lead id", "name": "leadId", "in": "formData", "required": true},
                    {"enum": [1, 2, 3, 4], "type": "integer", "description": "Registration option", "name": "selectedOption", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Academic purchase", "name": "isAcademic", "in": "formData"},
                    {"enum": ["UNAM", "UVM", "UAM"], "type": "string", "description": "University", "name": "university", "in": "formData"},
                    {"enum": ["profesor", "posgrado", "licenciatura"], "type": "string", "description": "Academic role", "name": "role", "in": "formData"},
                    {"type": "boolean", "description": "Paquete 11 purchase", "name": "isPaquete11", "in": "formData"},
                    {"type": "file", "description": "Receipt, pdf or image", "name": "receipt", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/confirmation": {
            "get": {
                "produces": ["application/json"],
                "tags": ["confirmation"],
                "summary": "Resolve confirmation page",
                "parameters": [
                    {"type": "string", "description": "Lead id", "name": "lead_id", "in": "query"},
                    {"type": "string", "description": "Transaction id", "name": "transaction_id", "in": "query"},
                    {"type": "string", "description": "Payment method", "name": "method", "in": "query"},
                    {"type": "string", "description": "Payment status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/api/revalidation": {
            "get": {
                "produces": ["application/json"],
                "tags": ["confirmation"],
                "summary": "Check receipt revalidation",
                "parameters": [
                    {"type": "string", "description": "Customer id", "name": "customer_id", "in": "query", "required": true},
                    {"type": "boolean", "description": "Receipt rejected", "name": "rejected", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"type": "object"}}
                }
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
	Title:            "Congress registration API",
	Description:      "Lead capture, pricing, payment dispatch and confirmation for the congress site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
