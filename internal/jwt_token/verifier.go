package jwttoken

import (
	"errors"
	"fmt"

	id "credipet/pkg/domain"
	"credipet/pkg/platform/middleware/auth"
)

// Verifier checks access tokens on behalf of the auth middleware. A token is
// only accepted when its subject names a non-zero principal.
type Verifier struct {
	service *JWTService
}

func NewVerifier(service *JWTService) *Verifier {
	return &Verifier{service: service}
}

func (v *Verifier) VerifyCaller(token string) (auth.Identity, error) {
	claims, err := v.service.ValidateToken(token)
	if err != nil {
		return auth.Identity{}, err
	}
	caller, err := id.ParsePrincipal(claims.Subject)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("invalid subject: %w", err)
	}
	if caller.IsZero() {
		return auth.Identity{}, errors.New("subject is the zero address")
	}
	return auth.Identity{Caller: caller, TokenID: claims.ID}, nil
}
