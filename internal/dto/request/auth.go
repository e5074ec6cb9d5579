package request

// CredentialsRequest is the body of POST /auth/signup and POST /auth/signin.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
