package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/plain")
	assert.Contains(t, mimeTypes, "application/json")
	assert.NotContains(t, mimeTypes, "text/html")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/path/to/release_notes.txt",
		MIMEType: "text/plain",
		Content:  []byte("  line one\n\nline two  "),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "release notes", doc.Title)
	assert.Equal(t, "  line one\n\nline two  ", doc.Content)
	assert.Equal(t, "text/plain", doc.Metadata["mime_type"])
	assert.Equal(t, "text", doc.Metadata["format"])
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_TitleFromMetadata(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "https://example.com/x.txt",
		Content:  []byte("body"),
		Metadata: map[string]any{"title": "From Metadata"},
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "From Metadata", result.Document.Title)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{uri: "/a/b/my-file.txt", expected: "my file"},
		{uri: "https://example.com/docs/", expected: "docs"},
		{uri: "notes", expected: "notes"},
		{uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTitle(tt.uri))
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
