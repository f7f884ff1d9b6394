package jwt

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Verify valida firma (HS256), iss y exp. No tiene efectos laterales.
//
// Devuelve ErrExpired solo si la firma es válida y el token venció; cualquier
// otra falla es ErrMalformed. La expiración es un corte duro: sin tolerancia de reloj.
func (i *Issuer) Verify(raw string) (Principal, error) {
	if raw == "" || len(raw) > MaxTokenBytes {
		return Principal{}, ErrMalformed
	}

	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(i.now),
	}
	if i.iss != "" {
		opts = append(opts, jwtv5.WithIssuer(i.iss))
	}

	var claims jwtv5.RegisteredClaims
	tok, err := jwtv5.NewParser(opts...).ParseWithClaims(raw, &claims, func(*jwtv5.Token) (any, error) {
		return i.key, nil
	})
	if err != nil {
		if onlyExpired(err) {
			return Principal{}, ErrExpired
		}
		return Principal{}, ErrMalformed
	}
	if !tok.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return Principal{}, ErrMalformed
	}

	p := Principal{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	return p, nil
}

// onlyExpired: jwt/v5 junta todas las fallas de claims en un solo error; es
// Expired solo si la expiración es la única.
func onlyExpired(err error) bool {
	if !errors.Is(err, jwtv5.ErrTokenExpired) {
		return false
	}
	for _, other := range []error{
		jwtv5.ErrTokenSignatureInvalid,
		jwtv5.ErrTokenInvalidIssuer,
		jwtv5.ErrTokenNotValidYet,
		jwtv5.ErrTokenUsedBeforeIssued,
		jwtv5.ErrTokenRequiredClaimMissing,
	} {
		if errors.Is(err, other) {
			return false
		}
	}
	return true
}
