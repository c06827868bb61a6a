package errors

var (
	ErrUnknown            = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument    = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound           = New(ERR_NOT_FOUND, "not found")
	ErrProcessing         = New(ERR_PROCESSING, "error processing")
	ErrConfiguration      = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled    = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrError              = New(ERR_ERROR, "generic error")
	ErrDecode             = New(ERR_DECODE, "decode error")
	ErrTruncatedInput     = New(ERR_TRUNCATED_INPUT, "truncated input")
	ErrMalformedInput     = New(ERR_MALFORMED_INPUT, "malformed input")
	ErrScriptInvalid      = New(ERR_SCRIPT_INVALID, "script invalid")
	ErrScriptUnderflow    = New(ERR_SCRIPT_UNDERFLOW, "stack underflow")
	ErrScriptDisabled     = New(ERR_SCRIPT_DISABLED, "disabled opcode")
	ErrScriptLimit        = New(ERR_SCRIPT_LIMIT, "script limit exceeded")
	ErrSignatureInvalid   = New(ERR_SIGNATURE_INVALID, "signature invalid")
	ErrBlockNotFound      = New(ERR_BLOCK_NOT_FOUND, "block not found")
	ErrBlockInvalid       = New(ERR_BLOCK_INVALID, "block invalid")
	ErrBlockExists        = New(ERR_BLOCK_EXISTS, "block exists")
	ErrBlockError         = New(ERR_BLOCK_ERROR, "block error")
	ErrTxNotFound         = New(ERR_TX_NOT_FOUND, "tx not found")
	ErrTxInvalid          = New(ERR_TX_INVALID, "tx invalid")
	ErrTxAlreadyExists    = New(ERR_TX_ALREADY_EXISTS, "tx already exists")
	ErrTxError            = New(ERR_TX_ERROR, "tx error")
	ErrStorageUnavailable = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageError       = New(ERR_STORAGE_ERROR, "storage error")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewError(message string, params ...interface{}) error {
	return New(ERR_ERROR, message, params...)
}
func NewDecodeError(message string, params ...interface{}) error {
	return New(ERR_DECODE, message, params...)
}

// NewTruncatedInputError wraps ErrTruncatedInput so callers can match it with errors.Is.
func NewTruncatedInputError(message string, params ...interface{}) error {
	return New(ERR_DECODE, message, append(params, ErrTruncatedInput)...)
}

// NewMalformedInputError wraps ErrMalformedInput so callers can match it with errors.Is.
func NewMalformedInputError(message string, params ...interface{}) error {
	return New(ERR_DECODE, message, append(params, ErrMalformedInput)...)
}
func NewScriptInvalidError(message string, params ...interface{}) error {
	return New(ERR_SCRIPT_INVALID, message, params...)
}
func NewScriptUnderflowError(message string, params ...interface{}) error {
	return New(ERR_SCRIPT_UNDERFLOW, message, params...)
}
func NewScriptDisabledError(message string, params ...interface{}) error {
	return New(ERR_SCRIPT_DISABLED, message, params...)
}
func NewScriptLimitError(message string, params ...interface{}) error {
	return New(ERR_SCRIPT_LIMIT, message, params...)
}
func NewSignatureInvalidError(message string, params ...interface{}) error {
	return New(ERR_SIGNATURE_INVALID, message, params...)
}
func NewBlockNotFoundError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_NOT_FOUND, message, params...)
}
func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
func NewBlockExistsError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_EXISTS, message, params...)
}
func NewBlockError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_ERROR, message, params...)
}
func NewTxNotFoundError(message string, params ...interface{}) error {
	return New(ERR_TX_NOT_FOUND, message, params...)
}
func NewTxInvalidError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID, message, params...)
}
func NewTxAlreadyExistsError(message string, params ...interface{}) error {
	return New(ERR_TX_ALREADY_EXISTS, message, params...)
}
func NewTxError(message string, params ...interface{}) error {
	return New(ERR_TX_ERROR, message, params...)
}
func NewStorageUnavailableError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_UNAVAILABLE, message, params...)
}
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}
