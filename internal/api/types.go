package api

// Pagination is the envelope metadata attached to list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
