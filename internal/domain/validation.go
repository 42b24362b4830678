package domain

import (
	"strings"
	"unicode/utf8"
)

// ValidateForPublishing checks a property against the publication
// completeness rules. It is pure and never short-circuits: every violated
// rule appends one message, in a fixed order, so callers can show the full
// corrective list at once.
func ValidateForPublishing(p *Property) ValidationOutcome {
	errors := []string{}

	if utf8.RuneCountInString(strings.TrimSpace(p.Title)) < 10 {
		errors = append(errors, "Título deve ter pelo menos 10 caracteres")
	}

	if utf8.RuneCountInString(strings.TrimSpace(p.Description)) < 50 {
		errors = append(errors, "Descrição deve ter pelo menos 50 caracteres")
	}

	if p.Neighborhood == "" || p.City == "" || p.State == "" {
		errors = append(errors, "Localização completa é obrigatória")
	}

	if p.Bedrooms < 0 || p.Bathrooms < 0 {
		errors = append(errors, "Número de quartos e banheiros deve ser válido")
	}

	if p.BuiltArea <= 0 {
		errors = append(errors, "Área construída deve ser maior que zero")
	}

	if p.SalePrice <= 0 {
		errors = append(errors, "Preço de venda deve ser maior que zero")
	}

	if len(p.Photos) == 0 {
		errors = append(errors, "Pelo menos uma foto é obrigatória")
	}

	return ValidationOutcome{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}
