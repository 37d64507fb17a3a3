package models

type ContextKey string

const (
	TenantIDKey            ContextKey = "tenant_id"
	IdentityKey            ContextKey = "identity"
	ResolvedPermissionsKey ContextKey = "resolved_permissions"
	RequestIDKey           ContextKey = "request_id"
)

// Identity is the validated caller attached by the identity stage.
// The engine never re-validates the credential it came from.
type Identity struct {
	UserID     int64  `json:"userId"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"nationalId,omitempty"`
}

// ApiResponse is the envelope every JSON answer uses, errors included.
type ApiResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(data interface{}) ApiResponse {
	return ApiResponse{Code: 200, Message: "success", Data: data}
}

func Failure(code int, message string) ApiResponse {
	return ApiResponse{Code: code, Message: message, Data: nil}
}
