package packets

type RequestLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RedeemRequest struct {
	Token string `json:"token" binding:"required"`
}
