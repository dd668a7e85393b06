// Package docs содержит OpenAPI-описание HTTP API для gin-swagger.
// Шаблон в формате swag, поддерживается вручную вместе с аннотациями хендлеров.
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
        "/api/v1/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Список заказов (админ)",
                "parameters": [
                    {"type": "string", "description": "Фильтр по статусу", "name": "status", "in": "query"},
                    {"type": "string", "description": "Фильтр по телефону", "name": "phone", "in": "query"},
                    {"type": "integer", "description": "Размер страницы (по умолчанию 20)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Смещение", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.OrderPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.UnauthorizedErrorResponse"}}
                }
            },
            "post": {
                "description": "Принимает заказ витрины. Сервер заново проверяет форму и пересчитывает итог; расхождение total даёт 422.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Оформление заказа",
                "parameters": [
                    {"description": "Заказ", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/checkout.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Order"}},
                    "400": {"description": "Неверное тело запроса", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "422": {"description": "Ошибки валидации", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка", "schema": {"$ref": "#/definitions/dto.InternalErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/login": {
            "post": {
                "description": "Выдаёт Bearer-токен для смены статусов и списка заказов",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Вход администратора",
                "parameters": [
                    {"description": "Данные авторизации", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.AdminToken"}},
                    "400": {"description": "Неверные данные", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "401": {"description": "Ошибка авторизации", "schema": {"$ref": "#/definitions/dto.UnauthorizedErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка", "schema": {"$ref": "#/definitions/dto.InternalErrorResponse"}}
                }
            }
        },
        "/api/v1/orders/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Смена статуса заказа",
                "parameters": [
                    {"type": "string", "description": "ID заказа", "name": "id", "in": "path", "required": true},
                    {"description": "Новый статус", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Order"}},
                    "400": {"description": "Неизвестный статус", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.UnauthorizedErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ForbiddenErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.NotFoundErrorResponse"}},
                    "409": {"description": "Недопустимый переход или параллельное изменение", "schema": {"$ref": "#/definitions/dto.ConflictErrorResponse"}}
                }
            }
        },
        "/api/v1/orders/track/{tracking_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Трекинг заказа",
                "parameters": [
                    {"type": "string", "description": "Tracking ID", "name": "tracking_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TrackResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.TrackResponse"}}
                }
            }
        },
        "/api/v1/orders/track/{tracking_id}/watch": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["orders"],
                "summary": "Живой трекинг (SSE)",
                "parameters": [
                    {"type": "string", "description": "Tracking ID", "name": "tracking_id", "in": "path", "required": true},
                    {"type": "string", "description": "Интервал опроса, 5s..30s", "name": "interval", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WatchEvent"}}
                }
            }
        },
        "/api/v1/promo-codes/{code}/validate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["promo"],
                "summary": "Проверка промокода",
                "parameters": [
                    {"type": "string", "description": "Промокод", "name": "code", "in": "path", "required": true},
                    {"type": "integer", "description": "Сумма корзины", "name": "subtotal", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PromoPreview"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.NotFoundErrorResponse"}}
                }
            }
        },
        "/api/v1/checkout/quote": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Расчёт итога",
                "parameters": [
                    {"description": "Корзина, район, промокод", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.QuoteInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pricing.Quote"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}}
                }
            }
        },
        "/api/v1/checkout/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Начать оформление",
                "parameters": [
                    {"description": "Корзина", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StartSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/checkout.Session"}}
                }
            }
        },
        "/api/v1/checkout/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Черновик оформления",
                "parameters": [
                    {"type": "string", "description": "ID сессии", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/checkout.Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.NotFoundErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Обновить корзину, форму или промокод",
                "parameters": [
                    {"type": "string", "description": "ID сессии", "name": "id", "in": "path", "required": true},
                    {"description": "Изменения", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/checkout.SessionUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/checkout.Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.NotFoundErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["checkout"],
                "summary": "Отменить оформление",
                "parameters": [
                    {"type": "string", "description": "ID сессии", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/checkout/sessions/{id}/quote": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Итог по черновику",
                "parameters": [
                    {"type": "string", "description": "ID сессии", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pricing.Quote"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.NotFoundErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}}
                }
            }
        },
        "/api/v1/checkout/sessions/{id}/steps/{step}/validate": {
            "post": {
                "description": "Все ошибки шага возвращаются разом; при успехе сессия переходит на следующий шаг.",
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Проверить шаг формы",
                "parameters": [
                    {"type": "string", "description": "ID сессии", "name": "id", "in": "path", "required": true},
                    {"type": "string", "enum": ["identity", "address", "payment", "review"], "description": "Шаг формы", "name": "step", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StepValidationResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}}
                }
            }
        },
        "/api/v1/checkout/sessions/{id}/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Отправить заказ",
                "parameters": [
                    {"type": "string", "description": "ID сессии", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Order"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.SubmissionErrorResponse"}},
                    "503": {"description": "Таймаут", "schema": {"$ref": "#/definitions/dto.SubmissionErrorResponse"}}
                }
            }
        },
        "/api/v1/reference/districts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Справочник районов и стоимости доставки",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pricing.DeliveryTable"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "minLength": 6},
                "username": {"type": "string"}
            }
        },
        "service.AdminToken": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_at": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "dto.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "step": {"type": "string"},
                "tag": {"type": "string"}
            }
        },
        "dto.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/dto.FieldError"}},
                "message": {"type": "string"}
            }
        },
        "dto.ConflictErrorResponse": {
            "type": "object",
            "properties": {
                "allowed": {"type": "array", "items": {"type": "string"}},
                "code": {"type": "string"},
                "details": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.UnauthorizedErrorResponse": {"$ref": "#/definitions/dto.ValidationErrorResponse"},
        "dto.ForbiddenErrorResponse": {"$ref": "#/definitions/dto.ValidationErrorResponse"},
        "dto.NotFoundErrorResponse": {"$ref": "#/definitions/dto.ValidationErrorResponse"},
        "dto.InternalErrorResponse": {"$ref": "#/definitions/dto.ValidationErrorResponse"},
        "dto.SubmissionErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        },
        "dto.UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "force": {"type": "boolean"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "processing", "shipped", "delivered", "cancelled"]}
            }
        },
        "dto.TrackResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "order": {"$ref": "#/definitions/models.Order"},
                "success": {"type": "boolean"}
            }
        },
        "dto.WatchEvent": {
            "type": "object",
            "properties": {
                "changed": {"type": "boolean"},
                "error": {"type": "string"},
                "fetching": {"type": "boolean"},
                "last_updated_at": {"type": "string"},
                "order": {"$ref": "#/definitions/models.Order"},
                "terminal": {"type": "boolean"}
            }
        },
        "dto.StartSessionRequest": {
            "type": "object",
            "properties": {
                "cart": {"type": "array", "items": {"$ref": "#/definitions/models.CartLineItem"}}
            }
        },
        "models.CartLineItem": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "name": {"type": "string"},
                "unit_price": {"type": "string"},
                "quantity": {"type": "integer"},
                "customization": {"type": "object"}
            }
        },
        "checkout.CreateOrderRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "string", "description": "JSON-массив позиций строкой"},
                "customer_name": {"type": "string"},
                "phone": {"type": "string"},
                "district": {"type": "string"},
                "thana": {"type": "string"},
                "address": {"type": "string"},
                "landmark": {"type": "string"},
                "total": {"type": "string"},
                "payment_info": {"type": "string", "description": "JSON-объект оплаты строкой"},
                "custom_instructions": {"type": "string"},
                "custom_images": {"type": "string", "description": "JSON-массив ссылок строкой или null"},
                "status": {"type": "string"},
                "promo_code": {"type": "string"}
            }
        },
        "checkout.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cart": {"type": "array", "items": {"$ref": "#/definitions/models.CartLineItem"}},
                "form": {"type": "object"},
                "promo_code": {"type": "string"},
                "step": {"type": "integer"}
            }
        },
        "checkout.SessionUpdate": {
            "type": "object",
            "properties": {
                "cart": {"type": "array", "items": {"$ref": "#/definitions/models.CartLineItem"}},
                "form": {"type": "object"},
                "promo_code": {"type": "string"}
            }
        },
        "dto.StepValidationResponse": {
            "type": "object",
            "properties": {
                "next": {"type": "string"},
                "step": {"type": "string"},
                "valid": {"type": "boolean"}
            }
        },
        "models.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tracking_id": {"type": "string"},
                "customer_name": {"type": "string"},
                "phone": {"type": "string"},
                "district": {"type": "string"},
                "thana": {"type": "string"},
                "address": {"type": "string"},
                "items": {"type": "string"},
                "subtotal": {"type": "integer"},
                "delivery_fee": {"type": "integer"},
                "discount": {"type": "integer"},
                "total": {"type": "integer"},
                "promo_code": {"type": "string"},
                "payment_info": {"type": "string"},
                "custom_instructions": {"type": "string"},
                "custom_images": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "pricing.Quote": {
            "type": "object",
            "properties": {
                "subtotal": {"type": "integer"},
                "delivery_fee": {"type": "integer"},
                "discount": {"type": "integer"},
                "total": {"type": "integer"},
                "provisional": {"type": "boolean"},
                "promo_code": {"type": "string"},
                "promo_error": {"type": "object"}
            }
        },
        "pricing.DeliveryTable": {
            "type": "object",
            "properties": {
                "default_fee": {"type": "integer"},
                "free_delivery_threshold": {"type": "integer"},
                "districts": {"type": "array", "items": {"type": "object"}}
            }
        },
        "service.OrderPage": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/models.Order"}},
                "total": {"type": "integer"}
            }
        },
        "service.PromoPreview": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "status": {"type": "string"},
                "discount_type": {"type": "string"},
                "discount_value": {"type": "string"},
                "min_order_amount": {"type": "integer"},
                "subtotal": {"type": "integer"},
                "discount": {"type": "integer"},
                "error": {"type": "object"}
            }
        },
        "service.QuoteInput": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.CartLineItem"}},
                "district": {"type": "string"},
                "promo_code": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Trynex Orders API",
	Description:      "Оформление заказов, расчёт итога, промокоды и трекинг",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
