package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for invocation history.
	DatabaseBackend string

	// Transport represents how the MCP server talks to its client.
	Transport string

	// ErrorKind classifies a failed report.
	ErrorKind string

	// ToolErrorMode controls how report failures reach an MCP client.
	ToolErrorMode string

	// InvocationStatus is the outcome of a recorded tool invocation.
	InvocationStatus string
)

// All output modes supported.
const (
	MarkdownOut OutputMode = "markdown" // default
	TextOut     OutputMode = "text"
	CSVOut      OutputMode = "csv"
	JSONOut     OutputMode = "json"
	ParquetOut  OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All MCP transports supported.
const (
	StdioTransport Transport = "stdio" // default
	HTTPTransport  Transport = "http"
)

// Report failure kinds.
const (
	HTTPStatusError    ErrorKind = "http_status"
	TransportError     ErrorKind = "transport"
	DecodeError        ErrorKind = "decode"
	MissingColumnError ErrorKind = "missing_column"
	InvalidValueError  ErrorKind = "invalid_value"
	DuplicateKeyError  ErrorKind = "duplicate_key"
	RenderError        ErrorKind = "render"
)

// Tool error modes.
const (
	FlagToolErrors ToolErrorMode = "flag" // default: MCP isError result
	TextToolErrors ToolErrorMode = "text" // plain text result, indistinguishable from data
)

// Invocation statuses.
const (
	StatusOK    InvocationStatus = "ok"
	StatusError InvocationStatus = "error"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	MarkdownOut: {},
	TextOut:     {},
	CSVOut:      {},
	JSONOut:     {},
	ParquetOut:  {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidTransports lists all valid MCP transports.
var ValidTransports = map[Transport]struct{}{
	StdioTransport: {},
	HTTPTransport:  {},
}

// ValidToolErrorModes lists all valid tool error modes.
var ValidToolErrorModes = map[ToolErrorMode]struct{}{
	FlagToolErrors: {},
	TextToolErrors: {},
}
