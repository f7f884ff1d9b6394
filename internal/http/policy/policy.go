// Package policy decide si una ruta es pública o requiere un principal.
//
// La tabla de reglas es declarativa, independiente del router y se evalúa en
// orden: gana la primera regla que coincide. Un request que no coincide con
// ninguna regla requiere autenticación.
//
// Patrones por segmento:
//   - literal   coincide exacto ("products")
//   - {name}    exactamente un segmento no vacío
//   - **        el resto del path (cero o más segmentos); solo al final
//
// Los segmentos vacíos no se colapsan: "/v1//products" no coincide con
// "/v1/products" y cae en el default.
package policy

import (
	"fmt"
	"net/http"
	"strings"
)

// Requirement es el requisito de acceso de una ruta.
type Requirement int

const (
	// Authenticated es el valor cero: una regla incompleta falla cerrada.
	Authenticated Requirement = iota
	Public
)

func (r Requirement) String() string {
	if r == Public {
		return "public"
	}
	return "authenticated"
}

// AnyMethod coincide con cualquier método.
const AnyMethod = "*"

// Rule es una entrada de la tabla.
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

func (r Rule) String() string {
	return fmt.Sprintf("%-7s %-28s %s", r.Method, r.Pattern, r.Requirement)
}

// Policy es inmutable después de New; segura para lecturas concurrentes.
type Policy struct {
	rules []compiled
}

type compiled struct {
	Rule
	segs []string
}

// New valida y compila la tabla. El orden de rules es el orden de evaluación.
func New(rules []Rule) (*Policy, error) {
	p := &Policy{rules: make([]compiled, 0, len(rules))}
	for i, r := range rules {
		if r.Method == "" {
			return nil, fmt.Errorf("policy: rule %d: empty method", i)
		}
		if r.Pattern != "**" && !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("policy: rule %d: pattern %q must start with /", i, r.Pattern)
		}
		segs := split(r.Pattern)
		for j, s := range segs {
			if s == "**" && j != len(segs)-1 {
				return nil, fmt.Errorf("policy: rule %d: ** only allowed as last segment", i)
			}
		}
		r.Method = strings.ToUpper(r.Method)
		p.rules = append(p.rules, compiled{Rule: r, segs: segs})
	}
	return p, nil
}

// MustNew es New que hace panic; para tablas estáticas.
func MustNew(rules []Rule) *Policy {
	p, err := New(rules)
	if err != nil {
		panic(err)
	}
	return p
}

// Rules devuelve una copia de la tabla en orden de evaluación.
func (p *Policy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	for i, c := range p.rules {
		out[i] = c.Rule
	}
	return out
}

// Decide devuelve el requisito para method+path y la regla que coincidió
// (nil si aplicó el default).
func (p *Policy) Decide(method, path string) (Requirement, *Rule) {
	segs := split(path)
	for i := range p.rules {
		c := &p.rules[i]
		if c.Method != AnyMethod && c.Method != method {
			continue
		}
		if match(c.segs, segs) {
			r := c.Rule
			return r.Requirement, &r
		}
	}
	return Authenticated, nil
}

// DecideRequest usa el path crudo si existe, igual que chi al rutear, así
// la política y el router ven el mismo path.
func (p *Policy) DecideRequest(r *http.Request) (Requirement, *Rule) {
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}
	return p.Decide(r.Method, path)
}

// split separa "/a/b" en ["a","b"]. "/" da []. Conserva segmentos vacíos intermedios.
func split(path string) []string {
	if path == "**" {
		return []string{"**"}
	}
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func match(pattern, segs []string) bool {
	for i, p := range pattern {
		if p == "**" {
			return true
		}
		if i >= len(segs) {
			return false
		}
		s := segs[i]
		switch {
		case isParam(p):
			if s == "" {
				return false
			}
		case p != s:
			return false
		}
	}
	return len(pattern) == len(segs)
}

func isParam(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}
