package dto

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(message string, data interface{}) Response {
	return Response{Status: "success", Message: message, Data: data}
}

func Error(message string) Response {
	return Response{Status: "error", Message: message}
}

// ValidationResponse carries a Laravel-style field error map for 422s.
type ValidationResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func ValidationFailed(errs map[string][]string) ValidationResponse {
	return ValidationResponse{Status: "error", Message: "Validation failed", Errors: errs}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
