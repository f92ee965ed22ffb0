package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail           = errors.New("email is required")
	ErrInvalidEmail         = errors.New("email address is malformed")
	ErrEmptyPassword        = errors.New("password is required")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrEmptyName            = errors.New("name is required")
	ErrInvalidRiskTolerance = errors.New("risk tolerance must be low, medium or high")
	ErrEmptySector          = errors.New("preferred sector cannot be blank")
	ErrNegativeAmount       = errors.New("investment amounts cannot be negative")
	ErrNoFieldsToUpdate     = errors.New("at least one field must be provided for update")
)
