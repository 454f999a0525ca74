package config

// Error message formats
const (
	ErrMsgParseEnv         = "failed to parse environment: %w"
	ErrMsgInvalidPortFmt   = "invalid PORT value: %d"
	ErrMsgMissingValueFmt  = "%s must be set"
	ErrMsgNotPositiveFmt   = "%s must be positive"
	ErrMsgNegativeFmt      = "%s must not be negative"
	ErrMsgUnknownDriverFmt = "unknown STORAGE_DRIVER %q, expected sqlite, postgres or memory"
	ErrMsgSectionFmt       = "invalid %s config: %w"
)

// Example values shipped in .env.example that must not reach production
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
