package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrVisitorAccessOnly ErrCode = "VISITOR_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Quiz-specific ─────────────────────────────────────────────────
	ErrSessionNotFound  ErrCode = "SESSION_NOT_FOUND"
	ErrInsufficientBank ErrCode = "INSUFFICIENT_BANK"
	ErrInvalidIndex     ErrCode = "INVALID_INDEX"
	ErrInvalidOption    ErrCode = "INVALID_OPTION"
	ErrAlreadyGraded    ErrCode = "ALREADY_GRADED"
	ErrBankInvalid      ErrCode = "BANK_INVALID"

	// ─── Content generation ────────────────────────────────────────────
	ErrUnsupportedLanguage ErrCode = "UNSUPPORTED_LANGUAGE"
	ErrUnknownFAQ          ErrCode = "UNKNOWN_FAQ_QUESTION"
	ErrGenerationFailed    ErrCode = "GENERATION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrVisitorAccessOnly:
		return "This resource requires a visitor token."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Quiz-specific ─────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "No quiz session in progress. Start a new quiz first."
	case ErrInsufficientBank:
		return "The question bank has fewer questions than a quiz requires."
	case ErrInvalidIndex:
		return "The question index is out of range for this quiz."
	case ErrInvalidOption:
		return "The selected option is not one of this question's choices."
	case ErrAlreadyGraded:
		return "This quiz has already been graded. Restart to try again."
	case ErrBankInvalid:
		return "One or more questions violate the bank invariants."

	// ─── Content generation ────────────────────────────────────────────
	case ErrUnsupportedLanguage:
		return "The requested language is not supported."
	case ErrUnknownFAQ:
		return "The question is not one of the known FAQ entries."
	case ErrGenerationFailed:
		return "Content generation is currently unavailable. Please try again later."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
