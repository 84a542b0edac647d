package sheetlite

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte("id,name\n1,alice\n2,bob\n3,北京\n")

	tests := []struct {
		name        string
		compression CompressionType
	}{
		{name: "none", compression: CompressionNone},
		{name: "gzip", compression: CompressionGZ},
		{name: "xz", compression: CompressionXZ},
		{name: "zstd", compression: CompressionZSTD},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			writer, err := newCompressionWriter(&buf, tt.compression)
			require.NoError(t, err)

			_, err = writer.Write(payload)
			require.NoError(t, err)
			require.NoError(t, writer.Close())

			reader, err := newCompressionReader(bytes.NewReader(buf.Bytes()), tt.compression)
			require.NoError(t, err)
			defer reader.Close() //nolint:errcheck

			decoded, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestCompressionActuallyCompresses(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("the same line of text\n"), 1000)

	for _, compression := range []CompressionType{CompressionGZ, CompressionXZ, CompressionZSTD} {
		var buf bytes.Buffer
		writer, err := newCompressionWriter(&buf, compression)
		require.NoError(t, err)

		_, err = writer.Write(payload)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		assert.Less(t, buf.Len(), len(payload), "compression %s", compression)
	}
}

func TestBzip2WriterUnsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := newCompressionWriter(&buf, CompressionBZ2)
	assert.ErrorIs(t, err, ErrBzip2WriteUnsupported)
}

func TestNoneWriterPassesThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer, err := newCompressionWriter(&buf, CompressionNone)
	require.NoError(t, err)

	_, err = writer.Write([]byte("plain"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	assert.Equal(t, "plain", buf.String())
}
