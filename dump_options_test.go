package sheetlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  OutputFormat
		wantStr string
		wantExt string
	}{
		{name: "csv", format: OutputFormatCSV, wantStr: "csv", wantExt: ".csv"},
		{name: "tsv", format: OutputFormatTSV, wantStr: "tsv", wantExt: ".tsv"},
		{name: "ltsv", format: OutputFormatLTSV, wantStr: "ltsv", wantExt: ".ltsv"},
		{name: "unknown falls back to csv", format: OutputFormat(42), wantStr: "csv", wantExt: ".csv"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStr, tt.format.String())
			assert.Equal(t, tt.wantExt, tt.format.Extension())
		})
	}
}

func TestCompressionType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		compression CompressionType
		wantStr     string
		wantExt     string
	}{
		{name: "none", compression: CompressionNone, wantStr: "none", wantExt: ""},
		{name: "gz", compression: CompressionGZ, wantStr: "gz", wantExt: ".gz"},
		{name: "bz2", compression: CompressionBZ2, wantStr: "bz2", wantExt: ".bz2"},
		{name: "xz", compression: CompressionXZ, wantStr: "xz", wantExt: ".xz"},
		{name: "zstd", compression: CompressionZSTD, wantStr: "zstd", wantExt: ".zst"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStr, tt.compression.String())
			assert.Equal(t, tt.wantExt, tt.compression.Extension())
		})
	}
}

func TestDumpOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults are uncompressed csv", func(t *testing.T) {
		t.Parallel()

		options := NewDumpOptions()
		assert.Equal(t, OutputFormatCSV, options.Format)
		assert.Equal(t, CompressionNone, options.Compression)
		assert.Equal(t, ".csv", options.FileExtension())
	})

	t.Run("with methods return modified copies", func(t *testing.T) {
		t.Parallel()

		base := NewDumpOptions()
		modified := base.WithFormat(OutputFormatTSV).WithCompression(CompressionGZ)

		assert.Equal(t, ".tsv.gz", modified.FileExtension())
		assert.Equal(t, ".csv", base.FileExtension(), "base options must stay untouched")
	})

	t.Run("zero value matches the defaults", func(t *testing.T) {
		t.Parallel()

		var zero DumpOptions
		assert.Equal(t, NewDumpOptions(), zero)
	})
}
