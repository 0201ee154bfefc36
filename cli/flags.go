package cli

const (
	FlagHome      = "home"
	FlagBigEndian = "big-endian"
	FlagFormat    = "format"
	FlagLogLevel  = "log-level"
	FlagMaxDepth  = "max-depth"
	FlagStrict    = "strict"
)

const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)
