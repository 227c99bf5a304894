package dto

import "time"

// ErrorResponse cuerpo de error HTTP. Code es estable (NOT_FOUND, CAPACITY_EXCEEDED, ...).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateRangeRequest filtro opcional por rango de fechas (RFC3339) en query.
type DateRangeRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// Parse convierte el rango; campos vacíos quedan en nil.
func (r DateRangeRequest) Parse() (from, to *time.Time, err error) {
	if r.From != "" {
		t, err := time.Parse(time.RFC3339, r.From)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if r.To != "" {
		t, err := time.Parse(time.RFC3339, r.To)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
