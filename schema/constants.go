package schema

// Custom string types for type safety.
type (
	// Depth represents a named analysis depth profile.
	Depth string

	// RecordSource represents where a raw record was collected from.
	RecordSource string

	// Convention represents a filename naming convention.
	Convention string

	// OutputMode represents the format of summary output.
	OutputMode string

	// ExportFormat represents the format of a run-history export.
	ExportFormat string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All depth profiles supported.
const (
	QuickDepth    Depth = "quick"
	StandardDepth Depth = "standard" // default
	DeepDepth     Depth = "deep"
)

// All record sources supported.
const (
	CommitSource        RecordSource = "commit"
	ReviewCommentSource RecordSource = "reviewComment"
)

// All naming conventions, in classification precedence order. The first
// matching convention wins, and OtherConvention is the exhaustive fallback,
// so every filename classifies exactly once. A bare lowercase word matches
// camelCase before the separator conventions.
const (
	PascalCase      Convention = "PascalCase"
	CamelCase       Convention = "camelCase"
	KebabCase       Convention = "kebab-case"
	SnakeCase       Convention = "snake_case"
	OtherConvention Convention = "other"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All export formats supported.
const (
	ParquetExport ExportFormat = "parquet" // default
	CSVExport     ExportFormat = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// MaxActivityExamples caps the commit subjects quoted under Recent Evolution.
const MaxActivityExamples = 5

// AllConventions returns the conventions in precedence order.
var AllConventions = []Convention{PascalCase, CamelCase, KebabCase, SnakeCase, OtherConvention}

// ValidDepths lists all valid depth profiles.
var ValidDepths = map[Depth]struct{}{
	QuickDepth:    {},
	StandardDepth: {},
	DeepDepth:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidExportFormats lists all valid export formats.
var ValidExportFormats = map[ExportFormat]struct{}{
	ParquetExport: {},
	CSVExport:     {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
