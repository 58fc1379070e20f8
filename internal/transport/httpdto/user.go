package httpdto

import "memories-chain/internal/domain/user"

// CreateUserRequest is used for POST /users
type CreateUserRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// UserResponse wraps a single user for both POST and GET /users
type UserResponse struct {
	User user.User `json:"user"`
}
