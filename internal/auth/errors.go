package auth

import "errors"

// ErrInvalidCredentials covers every authentication failure: unknown
// email, wrong password, and a company selector that does not match a
// password-verified account. Collapsing them keeps responses from
// leaking which accounts or companies exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrDuplicateTaxID means a company with the given tax id already exists.
var ErrDuplicateTaxID = errors.New("a company with this tax id is already registered")

// ErrDuplicateEmail means the email is already taken by another
// account, in any company.
var ErrDuplicateEmail = errors.New("this email is already in use by another account")

// ErrValidation wraps client-correctable input problems on registration.
var ErrValidation = errors.New("invalid registration data")
