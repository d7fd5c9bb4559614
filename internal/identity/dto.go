package identity

// registerRequest is the sign-up payload.
type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// confirmRequest finalizes a pending registration.
type confirmRequest struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// loginRequest is the credential payload for sign-in.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerResponse struct {
	UserHandle string `json:"userHandle"`
	Message    string `json:"message"`
}
