package dto

// RegisterRequest carries registration data from the client.
// Role is deliberately absent: public registration is always CUSTOMER.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Phone    string `json:"phone" validate:"required,max=20"`
}

// LoginRequest carries login credentials from the client.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse exposes only safe, non-sensitive user fields.
type RegisterResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// LoginResponse contains the session token and basic user info for
// frontend role-based routing.
type LoginResponse struct {
	Token   string `json:"token"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Message string `json:"message"`
}
