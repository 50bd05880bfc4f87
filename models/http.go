package models

// RegisterRequest is the JSON body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest is the JSON body of POST /api/auth/verify.
type VerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginRequest is the JSON body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is the generic acknowledgement envelope used by
// endpoints that have no entity payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse acknowledges a registration. EmailDispatched is false
// when the OTP email could not be sent; the account still exists and the
// caller should offer a resend path.
type RegisterResponse struct {
	Message         string `json:"message"`
	EmailDispatched bool   `json:"email_dispatched"`
}

// SessionResponse is returned by login and verify: a human-readable
// message plus the authenticated user's public summary. The session
// tokens themselves travel only in httpOnly cookies.
type SessionResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}
