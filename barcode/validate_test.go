package barcode

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentitySpecZeroValue(t *testing.T) {
	var spec IdentitySpec
	assert.True(t, spec.Accept("ACGT"))
	assert.True(t, spec.Accept(""))
}

func TestIdentitySpecWhitelist(t *testing.T) {
	spec, err := ParseWhitelist(bytes.NewReader([]byte("ACGT\nTTTT\n\nGGGG\n")))
	require.NoError(t, err)
	assert.True(t, spec.Accept("ACGT"))
	assert.True(t, spec.Accept("GGGG"))
	assert.False(t, spec.Accept("CCCC"))
	// Empty values pass: the field was not configured for this read.
	assert.True(t, spec.Accept(""))
}

func TestIdentitySpecPattern(t *testing.T) {
	spec, err := PatternSpec("NNNN")
	require.NoError(t, err)
	assert.True(t, spec.Accept("ACGT"))
	assert.False(t, spec.Accept("ACG"))
	assert.True(t, spec.Accept(""))

	_, err = PatternSpec("NNZ")
	require.Error(t, err)
}

// When both a whitelist and a pattern are configured for the same field, only
// the whitelist check applies.
func TestWhitelistPrecedence(t *testing.T) {
	p, err := CompilePattern("NNNN")
	require.NoError(t, err)
	spec := IdentitySpec{
		Whitelist: map[string]bool{"AAAA": true},
		Pattern:   p,
	}
	assert.True(t, spec.Accept("AAAA"))
	// CCCC matches the pattern but is not whitelisted.
	assert.False(t, spec.Accept("CCCC"))
}

func TestLoadWhitelist(t *testing.T) {
	dir, err := ioutil.TempDir("", "whitelist")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	plain := filepath.Join(dir, "codes.txt")
	require.NoError(t, ioutil.WriteFile(plain, []byte("AAAA\nCCCC\n"), 0644))
	spec, err := LoadWhitelist(plain)
	require.NoError(t, err)
	assert.True(t, spec.Accept("CCCC"))
	assert.False(t, spec.Accept("GGGG"))

	gzPath := filepath.Join(dir, "codes.txt.gz")
	buf := bytes.NewBuffer(nil)
	gz := gzip.NewWriter(buf)
	_, err = gz.Write([]byte("GGGG\nTTTT\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, ioutil.WriteFile(gzPath, buf.Bytes(), 0644))
	spec, err = LoadWhitelist(gzPath)
	require.NoError(t, err)
	assert.True(t, spec.Accept("TTTT"))
	assert.False(t, spec.Accept("AAAA"))

	_, err = LoadWhitelist(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}
