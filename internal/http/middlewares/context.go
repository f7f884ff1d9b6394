package middlewares

import (
	"context"

	jwtx "github.com/umdev/infoeste/internal/jwt"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey int

const (
	ctxPrincipalKey ctxKey = iota
	ctxRequestIDKey
)

// =================================================================================
// IDENTITY CONTEXT
// =================================================================================

// WithPrincipal liga el principal al request. Es de escritura única: si el
// contexto ya tiene un principal se devuelve sin cambios y ok=false.
func WithPrincipal(ctx context.Context, p jwtx.Principal) (context.Context, bool) {
	if _, exists := PrincipalFrom(ctx); exists {
		return ctx, false
	}
	return context.WithValue(ctx, ctxPrincipalKey, p), true
}

// PrincipalFrom devuelve el principal del request, si hay uno.
func PrincipalFrom(ctx context.Context) (jwtx.Principal, bool) {
	p, ok := ctx.Value(ctxPrincipalKey).(jwtx.Principal)
	return p, ok
}

// Subject devuelve el sujeto autenticado o "" si el request es anónimo.
func Subject(ctx context.Context) string {
	p, _ := PrincipalFrom(ctx)
	return p.Subject
}

// =================================================================================
// REQUEST ID
// =================================================================================

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	s, _ := ctx.Value(ctxRequestIDKey).(string)
	return s
}
