package render

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	os.Setenv("SET_VAR", "x")
	defer os.Unsetenv("SET_VAR")
	os.Unsetenv("MISSING")

	assert.Equal(t, "axb", string(Substitute([]byte("a${SET_VAR}b"))))
	assert.Equal(t, "ab", string(Substitute([]byte("a${MISSING}b"))))
	assert.Equal(t, "x and x", string(Substitute([]byte("${SET_VAR} and ${SET_VAR}"))))
	assert.Equal(t, "no tokens here", string(Substitute([]byte("no tokens here"))))
	// unbraced references are not tokens
	assert.Equal(t, "$SET_VAR", string(Substitute([]byte("$SET_VAR"))))
}

func TestFile(t *testing.T) {
	os.Setenv("RENDER_TEST_HOST", "db.example.com")
	defer os.Unsetenv("RENDER_TEST_HOST")

	dir, err := ioutil.TempDir("", "render")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "app.conf")
	err = ioutil.WriteFile(path, []byte("host=${RENDER_TEST_HOST}\nuser=${RENDER_TEST_NOUSER}\n"), 0640)
	assert.NoError(t, err)

	assert.NoError(t, File(path))
	content, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "host=db.example.com\nuser=\n", string(content))

	// permission bits survive the rewrite
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	// idempotent once no tokens remain
	assert.NoError(t, File(path))
	again, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, string(content), string(again))
}

func TestFileMissing(t *testing.T) {
	err := File("/does/not/exist")
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	os.Setenv("RENDER_TEST_VAL", "42")
	defer os.Unsetenv("RENDER_TEST_VAL")

	dir, err := ioutil.TempDir("", "rendertree")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "conf.d"), 0755))
	write := func(name string) string {
		path := filepath.Join(dir, name)
		assert.NoError(t, ioutil.WriteFile(path, []byte("v=${RENDER_TEST_VAL}"), 0644))
		return path
	}
	matching := write("server.CONF")
	nested := write(filepath.Join("conf.d", "with space.conf"))
	skipped := write("notes.txt")

	assert.NoError(t, Tree(dir, "*.conf"))

	read := func(path string) string {
		content, err := ioutil.ReadFile(path)
		assert.NoError(t, err)
		return string(content)
	}
	assert.Equal(t, "v=42", read(matching), "pattern match is case-insensitive")
	assert.Equal(t, "v=42", read(nested))
	assert.Equal(t, "v=${RENDER_TEST_VAL}", read(skipped))
}

func TestTreeDefaultPattern(t *testing.T) {
	os.Setenv("RENDER_TEST_VAL", "42")
	defer os.Unsetenv("RENDER_TEST_VAL")

	dir, err := ioutil.TempDir("", "rendertree")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "anything.xyz")
	assert.NoError(t, ioutil.WriteFile(path, []byte("${RENDER_TEST_VAL}"), 0644))
	assert.NoError(t, Tree(dir, ""))
	content, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "42", string(content))
}

func TestTreeBadPattern(t *testing.T) {
	assert.Error(t, Tree(os.TempDir(), "["))
}
