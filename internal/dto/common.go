package dto

// APIResponse is the envelope every endpoint returns. Data carries the
// payload on success; Message carries the error text on failure.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// PaginationParams defines the shared limit/offset query parameters.
type PaginationParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
