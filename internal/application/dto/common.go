package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails detalle estructurado para errores de stock o de línea:
// qué producto/línea hizo fallar la petición y con qué cantidades.
type ErrorDetails struct {
	ProductID string `json:"product_id,omitempty"`
	Line      int    `json:"line,omitempty"`
	Available int64  `json:"available,omitempty"`
	Requested int64  `json:"requested,omitempty"`
}
