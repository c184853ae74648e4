package dto

// ErrorItem señala un campo inválido dentro de la respuesta de error.
type ErrorItem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response envoltura estándar de todas las respuestas de la API.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []ErrorItem `json:"errors,omitempty"`
}

// OK construye una respuesta exitosa con datos.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKMessage construye una respuesta exitosa con mensaje y datos.
func OKMessage(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail construye una respuesta de error con mensaje.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// FailFields construye una respuesta de error con lista de campos.
func FailFields(message string, errs []ErrorItem) Response {
	return Response{Success: false, Message: message, Errors: errs}
}
