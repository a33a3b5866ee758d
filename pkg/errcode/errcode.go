package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBPathError
	DBNotConnectedError
	DBTableCheckError
	DBEmptyDatabaseError
	DBQueryError

	// Schema errors
	SchemaCreateError
	SchemaDropError

	// Sources errors
	SourcesConfigError
	SourcesCacheMissingError

	// Ingest errors
	IngestNoSourcesError
	IngestCacheOpenError
	IngestTxError
	IngestRunLedgerError
	IngestCancelledError
	IngestAllSourcesFailedError

	// Resolve errors
	ResolveAmbiguityError
	ResolveSelectionError
	ResolveCapsRulesError
	ResolveConflictsError

	// Report errors
	ReportUnknownTypeError
	ReportQueryError
	ReportTraceNotFoundError
)
