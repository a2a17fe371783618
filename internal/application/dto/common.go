package dto

// ErrorResponse cuerpo estándar de error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
