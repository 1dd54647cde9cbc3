package handler

const (
	errInternalServer     = "Internal server error"
	errDuplicateEmail     = "Email already registered"
	errInvalidCredentials = "Invalid email or password"
	errUserNotFound       = "User not found"
	errInvalidResetCode   = "Verification code is invalid or expired"
	errDeliveryFailed     = "Could not send verification email"
)
