package dto

type RegisterUser struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

type VerifyEmail struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type RequestPasswordReset struct {
	Email string `json:"email" validate:"required,email"`
}
