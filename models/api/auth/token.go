package authapimodels

type JWTResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // сек
}
