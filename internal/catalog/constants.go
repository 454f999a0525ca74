package catalog

// ConfigVersion is the catalog file format version this build understands
const ConfigVersion = "1.0"

// Error message formats for semantic validation
const (
	ErrMsgConfigNil        = "config is nil"
	ErrMsgNoItems          = "no items defined"
	ErrMsgNoCases          = "no cases defined"
	ErrMsgReadFileFailed   = "failed to read catalog file: %w"
	ErrMsgParseFailed      = "failed to parse catalog: %w"
	ErrFmtDuplicateItem    = "%w: item '%s'"
	ErrFmtDuplicateCase    = "%w: case '%s'"
	ErrFmtEmptyItemID      = "%w: item at index %d has empty id"
	ErrFmtInvalidRarity    = "%w: item '%s' has rarity '%s'"
	ErrFmtNonPositivePrice = "%w: case '%s' has price %d"
	ErrFmtBadCurrency      = "%w: case '%s' is priced in '%s', only gold is supported"
	ErrFmtEmptyDrops       = "%w: case '%s' has no drops"
	ErrFmtUnknownDropItem  = "%w: case '%s' drop %d references '%s'"
	ErrFmtNegativeWeight   = "%w: case '%s' drop %d has weight %v"
	ErrFmtUnknownSentinel  = "%w: nothing item '%s' is not defined"
	ErrFmtVersion          = "%w: unsupported version '%s'"
)

// Log messages
const (
	LogMsgCatalogLoaded   = "Catalog loaded"
	LogMsgCaseUnderWeight = "Case weights under-sum the draw range; remainder goes to the last drop"
	LogMsgCaseOverWeight  = "Case weights exceed the draw range; trailing drops are unreachable"
)
