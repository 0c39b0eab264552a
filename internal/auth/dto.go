package auth

// TokenRequestDTO exchanges the configured access key for tokens.
type TokenRequestDTO struct {
	AccessKey string `json:"access_key"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d TokenRequestDTO) Validate() error {
	if d.AccessKey == "" {
		return ValidationError{Msg: "access_key is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}
