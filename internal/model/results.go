package model

// DomainError is a business-rule rejection decoded from a GraphQL union
// failure branch (__typename != success type). The message originates
// upstream and may be shown to the user verbatim.
type DomainError struct {
	// Typename is the concrete GraphQL error type, e.g. "InsufficientStockError".
	Typename string
	// Code is the machine error code, e.g. "INSUFFICIENT_STOCK_ERROR".
	Code    string
	Message string
	// QuantityAvailable is set only for insufficient-stock errors.
	QuantityAvailable int
}

func (e *DomainError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// Union type names the storefront branches on.
const (
	TypeOrder             = "Order"
	TypeCurrentUser       = "CurrentUser"
	TypeSuccess           = "Success"
	TypeInsufficientStock = "InsufficientStockError"
	TypeInvalidCreds      = "InvalidCredentialsError"
	TypeNotVerified       = "NotVerifiedError"
	TypeMissingPassword   = "MissingPasswordError"
	TypePasswordInvalid   = "PasswordValidationError"
	TypePasswordSet       = "PasswordAlreadySetError"
	TypeTokenInvalid      = "VerificationTokenInvalidError"
	TypeTokenExpired      = "VerificationTokenExpiredError"
	TypeNativeAuth        = "NativeAuthStrategyError"
	TypeNoActiveOrder     = "NoActiveOrderError"
	TypeOrderModification = "OrderModificationError"
	TypeOrderTransition   = "OrderStateTransitionError"
)

// OrderResult is the outcome of an order mutation: exactly one of Order or
// Err is set.
type OrderResult struct {
	Order *Order
	Err   *DomainError
}

// CurrentUser identifies the signed-in user after authentication.
type CurrentUser struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}

// UserResult is the outcome of an authentication-style mutation.
type UserResult struct {
	User *CurrentUser
	Err  *DomainError
}

// SuccessResult is the outcome of a mutation whose success branch carries no
// payload (e.g. account registration).
type SuccessResult struct {
	Success bool
	Err     *DomainError
}
