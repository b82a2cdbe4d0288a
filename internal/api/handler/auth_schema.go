package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for operations with no payload.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

// loginRequest carries credentials. Exactly one of username or email must be
// set; the handler enforces that before any store access.
type loginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// tokenRequest is the legacy raw-credential check: a single identifier
// matched against username or email.
type tokenRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// identityResponse is the public identity returned by every auth endpoint.
// The password hash never leaves the service layer.
type identityResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
