package token

type SaveTokenInput struct {
	Token string

	// Username is the host identity the token was issued to
	Username string
}

type ValidateTokenInput struct {
	Token string
}

type DeleteTokenInput struct {
	Token string
}
