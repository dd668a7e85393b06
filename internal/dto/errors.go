package dto

// BaseError универсальный корневой формат ошибки
// Code: машинно-ориентированный код (snake_case)
// Message: краткое человеко-читаемое описание
// Details: дополнительная строка (вид ошибки / пояснение)
// Fields: для валидационных ошибок (поле + шаг формы + текст)
type BaseError struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Details   string       `json:"details,omitempty"`
	Retryable bool         `json:"retryable,omitempty"`
	Fields    []FieldError `json:"fields,omitempty"`
}

// FieldError отдельная ошибка по конкретному полю
// Step: шаг оформления (identity/address/payment/review), если известен
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Step    string `json:"step,omitempty"`
}

// ValidationErrorResponse 400/422
// Code: "validation_error"
type ValidationErrorResponse BaseError

// ConflictErrorResponse 409
// Пример: недопустимый переход статуса или параллельное изменение
// Code: "conflict"
// Allowed: статусы, в которые заказ можно перевести из текущего
type ConflictErrorResponse struct {
	BaseError
	Allowed []string `json:"allowed,omitempty"`
}

// UnauthorizedErrorResponse 401
// Code: "unauthorized"
type UnauthorizedErrorResponse BaseError

// ForbiddenErrorResponse 403
// Code: "forbidden"
type ForbiddenErrorResponse BaseError

// NotFoundErrorResponse 404
// Code: "not_found"
type NotFoundErrorResponse BaseError

// SubmissionErrorResponse 502/503
// Заказ не отправлен, черновик сохранён, запрос можно повторить
// Code: "submission_failed"
type SubmissionErrorResponse BaseError

// InternalErrorResponse 500
// Code: "internal_error"
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewConflictError(msg, details string, allowed []string) ConflictErrorResponse {
	return ConflictErrorResponse{
		BaseError: BaseError{Code: "conflict", Message: msg, Details: details},
		Allowed:   allowed,
	}
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewSubmissionError(msg string) SubmissionErrorResponse {
	return SubmissionErrorResponse(BaseError{Code: "submission_failed", Message: msg, Retryable: true})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
