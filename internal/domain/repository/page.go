package repository

// Límites de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page es una ventana 1-based.
type Page struct {
	Number int
	Limit  int
}

// Offset devuelve la cantidad de filas a saltear.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}
