package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is neither the owner of the resource nor an admin.
var ErrForbidden = errors.New("forbidden")

// ErrBudgetInactive indicates that a transaction referenced a budget that has been deactivated.
var ErrBudgetInactive = errors.New("budget is not active")

// ErrDateOutOfRange indicates that a transaction date falls outside the referenced budget's period.
var ErrDateOutOfRange = errors.New("transaction date is outside the budget period")

// ErrInvalidPeriod indicates that a budget's end date is not after its start date.
var ErrInvalidPeriod = errors.New("invalid budget period")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
