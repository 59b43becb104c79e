// Package docs registra a especificação OpenAPI servida em /swagger/.
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
        "/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Abre uma sessão de convidado",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Session"}},
                    "503": {"description": "Cache de sessão indisponível", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Lista a vitrine",
                "parameters": [
                    {"type": "string", "description": "Low to High | High to Low | New Added | On Sale", "name": "sort", "in": "query"},
                    {"type": "number", "description": "Preço mínimo", "name": "priceMin", "in": "query"},
                    {"type": "number", "description": "Preço máximo", "name": "priceMax", "in": "query"},
                    {"type": "number", "description": "Mínimo do atributo secundário", "name": "caratMin", "in": "query"},
                    {"type": "number", "description": "Máximo do atributo secundário", "name": "caratMax", "in": "query"},
                    {"type": "string", "description": "on-sale | in-stock", "name": "status", "in": "query"},
                    {"type": "string", "description": "Slug da categoria", "name": "category", "in": "query"},
                    {"type": "string", "description": "Slug da subcategoria", "name": "subCategory", "in": "query"},
                    {"type": "string", "description": "Slug da cor", "name": "color", "in": "query"},
                    {"type": "string", "description": "Slug da marca", "name": "brand", "in": "query"},
                    {"type": "integer", "description": "Página (base 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Itens por página", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalogservice.Listing"}},
                    "400": {"description": "Parâmetro inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Detalhe do produto",
                "parameters": [{"type": "string", "description": "ID do produto", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProductDetail"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/products/{id}/variant": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Resolve a variante de uma seleção de atributos",
                "parameters": [
                    {"type": "string", "description": "ID do produto", "name": "id", "in": "path", "required": true},
                    {"description": "Atributo -> opção", "name": "selection", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalogservice.VariantResolution"}},
                    "400": {"description": "Seleção mal formada", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Produto ou variante inexistente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/coupons": {
            "get": {
                "produces": ["application/json"],
                "tags": ["coupons"],
                "summary": "Cupons de oferta",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Coupon"}}}
                }
            }
        },
        "/cart": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Carrinho da sessão",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartSummary"}},
                    "401": {"description": "Sessão ausente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["cart"],
                "summary": "Esvazia o carrinho",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cart/summary": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Totais do carrinho",
                "parameters": [{"type": "string", "description": "Opção de entrega", "name": "shippingOption", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartSummary"}},
                    "400": {"description": "Opção de entrega desconhecida", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/cart/items": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Adiciona item ao carrinho",
                "parameters": [{"description": "Produto, quantidade e seleção", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cartservice.AddItemRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CartSummary"}},
                    "400": {"description": "Fora de estoque ou seleção incompleta", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Produto ou variante inexistente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/cart/items/{productID}": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Altera a quantidade de uma linha",
                "parameters": [
                    {"type": "string", "description": "ID do produto", "name": "productID", "in": "path", "required": true},
                    {"description": "Quantidade e variante", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.UpdateQuantityRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartSummary"}}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Remove uma linha do carrinho",
                "parameters": [
                    {"type": "string", "description": "ID do produto", "name": "productID", "in": "path", "required": true},
                    {"type": "string", "description": "Variante", "name": "variant", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartSummary"}}}
            }
        },
        "/cart/coupon": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Aplica um cupom",
                "parameters": [{"description": "Código do cupom", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.CouponRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartSummary"}},
                    "400": {"description": "Cupom inexistente, expirado ou abaixo do mínimo", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Remove o cupom ativo",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartSummary"}}}
            }
        },
        "/checkout": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Envia o pedido",
                "parameters": [{"description": "Entrega e forma de pagamento", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/checkoutservice.CheckoutRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/checkoutservice.CheckoutResult"}},
                    "400": {"description": "Carrinho vazio ou dados inválidos", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "402": {"description": "Cartão recusado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Checkout já em andamento", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "503": {"description": "Falha ao gravar o pedido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "504": {"description": "Tempo esgotado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Confirmação do pedido",
                "parameters": [{"type": "string", "description": "ID do pedido", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Order"}},
                    "404": {"description": "Pedido não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "category": {"type": "string"},
                "reason": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.Session": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "domain.Variant": {
            "type": "object",
            "properties": {
                "options": {"type": "array", "items": {"type": "string"}},
                "stock": {"type": "integer"},
                "price": {"type": "number"},
                "warrantyPeriod": {"type": "integer"}
            }
        },
        "domain.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sku": {"type": "string"},
                "title": {"type": "string"},
                "price": {"type": "number"},
                "discount": {"type": "number"},
                "status": {"type": "string"},
                "productType": {"type": "string"},
                "warrantyPeriod": {"type": "integer"},
                "productVariants": {"type": "array", "items": {"$ref": "#/definitions/domain.Variant"}}
            }
        },
        "domain.ProductDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "price": {"type": "number"},
                "effectivePrice": {"type": "number"},
                "averageRating": {"type": "number"},
                "reviewCount": {"type": "integer"},
                "purchasable": {"type": "boolean"}
            }
        },
        "domain.Coupon": {
            "type": "object",
            "properties": {
                "couponCode": {"type": "string"},
                "title": {"type": "string"},
                "discountPercentage": {"type": "number"},
                "minimumAmount": {"type": "number"},
                "productType": {"type": "string"},
                "endTime": {"type": "string"}
            }
        },
        "domain.CartItem": {
            "type": "object",
            "properties": {
                "productId": {"type": "string"},
                "title": {"type": "string"},
                "price": {"type": "number"},
                "orderQuantity": {"type": "integer"},
                "productType": {"type": "string"},
                "selectedVariant": {"$ref": "#/definitions/domain.Variant"},
                "warrantyPeriod": {"type": "integer"}
            }
        },
        "domain.Totals": {
            "type": "object",
            "properties": {
                "subTotal": {"type": "number"},
                "eligibleSubtotal": {"type": "number"},
                "shippingCost": {"type": "number"},
                "discount": {"type": "number"},
                "totalAmount": {"type": "number"}
            }
        },
        "domain.CartSummary": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.CartItem"}},
                "shippingOption": {"type": "string"},
                "totals": {"$ref": "#/definitions/domain.Totals"}
            }
        },
        "domain.ShippingInfo": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "country": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "zipCode": {"type": "string"},
                "contactNo": {"type": "string"},
                "email": {"type": "string"},
                "orderNote": {"type": "string"},
                "shippingOption": {"type": "string"}
            }
        },
        "domain.CardDetails": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "billingName": {"type": "string"},
                "billingEmail": {"type": "string"}
            }
        },
        "domain.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user": {"type": "string"},
                "shipping": {"$ref": "#/definitions/domain.ShippingInfo"},
                "paymentMethod": {"type": "string"},
                "subTotal": {"type": "number"},
                "shippingCost": {"type": "number"},
                "discount": {"type": "number"},
                "totalAmount": {"type": "number"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "cart.UpdateQuantityRequest": {
            "type": "object",
            "properties": {
                "quantity": {"type": "integer"},
                "variant": {"type": "string"}
            }
        },
        "cart.CouponRequest": {
            "type": "object",
            "properties": {
                "couponCode": {"type": "string"}
            }
        },
        "cartservice.AddItemRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "string"},
                "quantity": {"type": "integer"},
                "selectedAttributes": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "catalogservice.Listing": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "maxPrice": {"type": "number"}
            }
        },
        "catalogservice.VariantResolution": {
            "type": "object",
            "properties": {
                "complete": {"type": "boolean"},
                "variant": {"$ref": "#/definitions/domain.Variant"},
                "price": {"type": "number"},
                "purchasable": {"type": "boolean"}
            }
        },
        "checkoutservice.CheckoutRequest": {
            "type": "object",
            "properties": {
                "shipping": {"$ref": "#/definitions/domain.ShippingInfo"},
                "paymentMethod": {"type": "string", "enum": ["Card", "COD"]},
                "card": {"$ref": "#/definitions/domain.CardDetails"}
            }
        },
        "checkoutservice.CheckoutResult": {
            "type": "object",
            "properties": {
                "orderId": {"type": "string"},
                "state": {"type": "string"},
                "totals": {"$ref": "#/definitions/domain.Totals"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo guarda as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "GoStore API",
	Description:      "Vitrine, carrinho de sessão, cupons e checkout.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
