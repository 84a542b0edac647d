package sheetlite

// OutputFormat selects the text format tables are exported in.
type OutputFormat int

const (
	// OutputFormatCSV exports comma-separated values
	OutputFormatCSV OutputFormat = iota
	// OutputFormatTSV exports tab-separated values
	OutputFormatTSV
	// OutputFormatLTSV exports labeled tab-separated values
	OutputFormatLTSV
)

// String returns the format's short name.
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatTSV:
		return "tsv"
	case OutputFormatLTSV:
		return "ltsv"
	default:
		return "csv"
	}
}

// Extension returns the file extension used for the format.
func (f OutputFormat) Extension() string {
	return "." + f.String()
}

// CompressionType selects the compression applied to exported files.
type CompressionType int

const (
	// CompressionNone writes plain files
	CompressionNone CompressionType = iota
	// CompressionGZ compresses with gzip
	CompressionGZ
	// CompressionBZ2 decompresses bzip2 input; writing it is not supported
	CompressionBZ2
	// CompressionXZ compresses with xz
	CompressionXZ
	// CompressionZSTD compresses with zstandard
	CompressionZSTD
)

// String returns the compression's short name.
func (c CompressionType) String() string {
	switch c {
	case CompressionGZ:
		return "gz"
	case CompressionBZ2:
		return "bz2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the extension appended after the format extension, empty
// for uncompressed output.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionGZ:
		return ".gz"
	case CompressionBZ2:
		return ".bz2"
	case CompressionXZ:
		return ".xz"
	case CompressionZSTD:
		return ".zst"
	default:
		return ""
	}
}

// DumpOptions configures how database tables are exported. The zero value
// exports uncompressed CSV.
//
// Example:
//
//	options := NewDumpOptions().
//		WithFormat(OutputFormatTSV).
//		WithCompression(CompressionGZ)
//
//	files, err := DumpDatabase("output/sales.db", "exports", options)
type DumpOptions struct {
	// Format is the text format tables are written in
	Format OutputFormat
	// Compression is applied on top of the format
	Compression CompressionType
}

// NewDumpOptions returns the default export options: CSV, uncompressed.
func NewDumpOptions() DumpOptions {
	return DumpOptions{Format: OutputFormatCSV, Compression: CompressionNone}
}

// WithFormat returns a copy of the options with the format replaced.
func (o DumpOptions) WithFormat(format OutputFormat) DumpOptions {
	o.Format = format
	return o
}

// WithCompression returns a copy of the options with the compression
// replaced.
func (o DumpOptions) WithCompression(compression CompressionType) DumpOptions {
	o.Compression = compression
	return o
}

// FileExtension returns the full extension of exported files, format and
// compression combined.
func (o DumpOptions) FileExtension() string {
	return o.Format.Extension() + o.Compression.Extension()
}
