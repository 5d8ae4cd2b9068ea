// Package docs contiene la especificación OpenAPI servida en /docs.
// Mantener alineado con las anotaciones de los handlers en internal/interfaces/http.
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
        "/api/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Categorías de producto",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategoryListResponse"}}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "description": "Total de productos, alertas de stock bajo, vencidos y por vencer, y los 7 movimientos más recientes.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Resumen del inventario",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardSummaryDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/movements": {
            "get": {
                "description": "Todos los movimientos, del más reciente al más antiguo.",
                "produces": ["application/json"],
                "tags": ["movements"],
                "summary": "Listar movimientos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.MovementResponse"}}}
                }
            },
            "post": {
                "description": "IN suma y OUT resta la cantidad al producto en una única transacción.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movements"],
                "summary": "Registrar movimiento de inventario",
                "parameters": [
                    {"description": "productId, type (IN | OUT), quantity", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateMovementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.MovementResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "description": "Del más reciente al más antiguo. Cada producto incluye su estado derivado.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Listar productos",
                "parameters": [
                    {"type": "string", "description": "Subcadena del nombre (sin distinguir mayúsculas)", "name": "search", "in": "query"},
                    {"type": "string", "description": "Categoría exacta", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Crear producto",
                "parameters": [
                    {"description": "Datos del producto", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Obtener producto por ID",
                "parameters": [
                    {"type": "integer", "description": "ID del producto", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Actualización parcial. La cantidad no se puede editar: usar movimientos.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Actualizar producto",
                "parameters": [
                    {"type": "integer", "description": "ID del producto", "name": "id", "in": "path", "required": true},
                    {"description": "Campos a actualizar", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Rechazado con 409 si el producto tiene movimientos registrados.",
                "tags": ["products"],
                "summary": "Eliminar producto",
                "parameters": [
                    {"type": "integer", "description": "ID del producto", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products/{id}/movements": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Historial de movimientos de un producto",
                "parameters": [
                    {"type": "integer", "description": "ID del producto", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.MovementResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Estado del servicio",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.CategoryListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.CreateMovementRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "integer"},
                "quantity": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "dto.CreateProductRequest": {
            "type": "object",
            "properties": {
                "batch": {"type": "string"},
                "category": {"type": "string"},
                "expirationDate": {"type": "string"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "supplier": {"type": "string"},
                "unit": {"type": "string"}
            }
        },
        "dto.DashboardSummaryDTO": {
            "type": "object",
            "properties": {
                "expired": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}},
                "expiredCount": {"type": "integer"},
                "expiringSoon": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}},
                "expiringSoonCount": {"type": "integer"},
                "lowStock": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}},
                "lowStockCount": {"type": "integer"},
                "recentMovements": {"type": "array", "items": {"$ref": "#/definitions/dto.MovementResponse"}},
                "totalProducts": {"type": "integer"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.MovementResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "id": {"type": "integer"},
                "productId": {"type": "integer"},
                "quantity": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "dto.ProductResponse": {
            "type": "object",
            "properties": {
                "batch": {"type": "string"},
                "category": {"type": "string"},
                "createdAt": {"type": "string"},
                "expirationDate": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "status": {"type": "string"},
                "supplier": {"type": "string"},
                "unit": {"type": "string"}
            }
        },
        "dto.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "batch": {"type": "string"},
                "category": {"type": "string"},
                "expirationDate": {"type": "string"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "supplier": {"type": "string"},
                "unit": {"type": "string"}
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
	Title:            "MedSupply API",
	Description:      "Inventario de insumos médicos: productos, movimientos de stock y alertas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
