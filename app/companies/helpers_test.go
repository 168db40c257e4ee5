package companies

import (
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/internal/validator"
)

func validatorFor() *validator.Validator {
	return validator.New()
}

func stripper() sanitizer.HTMLStripperer {
	return sanitizer.NewHTMLStripper()
}
