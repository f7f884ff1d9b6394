// Package jwt emite y verifica los tokens de sesión (HS256, sin estado).
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// MaxTokenBytes acota el tamaño de un token antes de parsearlo.
// Un token legítimo (header + sub/iat/exp/iss + firma) ocupa unos cientos de bytes.
const MaxTokenBytes = 4096

var (
	// ErrExpired: firma válida pero now >= exp.
	ErrExpired = errors.New("jwt: token expired")
	// ErrMalformed: no parsea, firma inválida, algoritmo inesperado o claims faltantes.
	ErrMalformed = errors.New("jwt: token malformed")
	// ErrEmptySubject: Issue sin subject.
	ErrEmptySubject = errors.New("jwt: empty subject")
)

// Principal es la identidad autenticada que resulta de un token válido.
type Principal struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token es un credencial firmado recién emitido.
type Token struct {
	Raw       string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer firma tokens con una clave simétrica cargada una sola vez al arranque.
// Es inmutable después de NewIssuer y seguro para uso concurrente.
type Issuer struct {
	iss string
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewIssuer crea el Token Service. key debe tener al menos 32 bytes (HS256).
func NewIssuer(iss string, key []byte, ttl time.Duration) (*Issuer, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("jwt: signing key must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt: ttl must be positive")
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Issuer{iss: iss, key: k, ttl: ttl, now: time.Now}, nil
}

// WithClock devuelve una copia del Issuer que usa el reloj dado (tests, CLI).
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// TTL devuelve la vida útil configurada de los tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue emite un token con iat = now y exp = now + TTL.
func (i *Issuer) Issue(subject string) (Token, error) {
	if strings.TrimSpace(subject) == "" {
		return Token{}, ErrEmptySubject
	}
	// NumericDate trunca a segundos; usamos el mismo valor para que Token refleje las claims.
	now := i.now().UTC().Truncate(time.Second)
	exp := now.Add(i.ttl)

	claims := jwtv5.RegisteredClaims{
		Issuer:    i.iss,
		Subject:   subject,
		IssuedAt:  jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(exp),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.key)
	if err != nil {
		return Token{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return Token{Raw: signed, Subject: subject, IssuedAt: now, ExpiresAt: exp}, nil
}
