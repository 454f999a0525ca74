package harvest

// Default reward ranges, inclusive
const (
	DefaultSilverMin int64 = 200
	DefaultSilverMax int64 = 1999
	DefaultGoldMin   int64 = 10
	DefaultGoldMax   int64 = 59
)

const (
	ErrMsgInvertedRangeFmt = "%w: harvest %s range [%d, %d] is invalid"
	ErrMsgHarvestFailed    = "harvest failed: %w"

	LogMsgHarvested = "Harvest collected"
)
