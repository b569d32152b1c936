package dto

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutInput struct {
	RefreshToken string `json:"refresh_token"`
	// Everywhere revokes every active session of the token's owner, not just
	// the presented one.
	Everywhere bool `json:"everywhere"`
}
