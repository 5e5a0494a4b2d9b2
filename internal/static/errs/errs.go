package errs

import "errors"

var InvalidCredentials = errors.New("invalid credentials")

var (
	InternalError   = errors.New("internal error")
	GeneratingToken = errors.New("error generating token")
	UserNotFound    = errors.New("user not found")
	RoleNotFound    = errors.New("role not found")
)

// query engine boundary
var (
	UnsupportedCompare  = errors.New("unsupported compare operator")
	UnsupportedTaxOp    = errors.New("unsupported taxonomy operator")
	UnsupportedRelation = errors.New("unsupported relation")
	UnsupportedTypeHint = errors.New("unsupported value type hint")
	BadBetweenValue     = errors.New("BETWEEN requires a two-element value")
	BadInValue          = errors.New("IN requires a list value")
	UnknownOrderField   = errors.New("unknown order field")
	BadDirection        = errors.New("unsupported relationship direction")
)

var (
	OptionNotFound = errors.New("option not found")
	AssetNotFound  = errors.New("asset not registered")
	AssetCycle     = errors.New("asset dependency cycle")
)
