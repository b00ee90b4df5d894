package readability_test

import (
	"testing"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewMetadataExtractor().ExtractMetadata("")

	require.Error(t, err)
	assert.Equal(t, recipescrape.EINVALID, recipescrape.ErrorCode(err))
}

func TestMetadataExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Banana Bread</title></head>
<body><article><p>Ripe bananas make the best loaf.</p></article></body>
</html>`

	meta, err := readability.NewMetadataExtractor().ExtractMetadata(html)

	require.NoError(t, err)
	assert.Equal(t, "Banana Bread", meta.Title)
}

func TestMetadataExtractor_ReadsOpenGraphTags(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head>
<title>Banana Bread</title>
<meta property="og:description" content="Moist banana bread with a crackly top.">
<meta property="og:image" content="https://example.com/banana-bread.jpg">
</head>
<body>
<article>
<h1>Banana Bread</h1>
<p>Ripe bananas make the best loaf, so wait until the peels are covered in brown spots before baking.</p>
</article>
</body>
</html>`

	meta, err := readability.NewMetadataExtractor().ExtractMetadata(html)

	require.NoError(t, err)
	assert.Equal(t, "Moist banana bread with a crackly top.", meta.Description)
	assert.Equal(t, "https://example.com/banana-bread.jpg", meta.ImageURL)
}

func TestMetadataExtractor_UsesExcerptWithoutMetaDescription(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Banana Bread</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<p>Ripe bananas make the best loaf, so wait until the peels are covered in brown spots before baking.</p>
</article>
</body>
</html>`

	meta, err := readability.NewMetadataExtractor().ExtractMetadata(html)

	require.NoError(t, err)
	assert.Contains(t, meta.Description, "Ripe bananas")
	assert.Empty(t, meta.ImageURL)
}
