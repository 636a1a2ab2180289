// Package render rewrites ${VAR} tokens in template files with values
// from the process environment.
package render

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// token matches ${NAME} where NAME is any run of characters other than
// a closing brace, including an empty run
var token = regexp.MustCompile(`\$\{([^}]*)\}`)

// Substitute replaces every ${NAME} token in data with the value of the
// environment variable NAME, or the empty string if NAME is unset
func Substitute(data []byte) []byte {
	return token.ReplaceAllFunc(data, func(match []byte) []byte {
		name := string(match[2 : len(match)-1])
		return []byte(os.Getenv(name))
	})
}

// File substitutes environment variables into the file at filePath,
// rewriting it in place. The rewrite goes through a temporary file in
// the same directory that carries the original's permission bits, so a
// failed write never leaves a half-rendered template behind.
func File(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("could not render %s: not a regular file", filePath)
	}
	if err := unix.Access(filePath, unix.R_OK|unix.W_OK); err != nil {
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	log.Infof("rendering environment into %s", filePath)
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	tmp, err := ioutil.TempFile(filepath.Dir(filePath), ".render-")
	if err != nil {
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	if _, err := tmp.Write(Substitute(data)); err != nil {
		tmp.Close()
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("could not render %s: %s", filePath, err)
	}
	return nil
}

// Tree walks the directory at root and applies File to every regular
// file whose base name matches namePattern, case-insensitively. An
// empty pattern matches everything. The order files are visited in is
// not part of the contract.
func Tree(root, namePattern string) error {
	if namePattern == "" {
		namePattern = "*"
	}
	namePattern = strings.ToLower(namePattern)
	if _, err := path.Match(namePattern, ""); err != nil {
		return fmt.Errorf("bad name pattern '%s': %s", namePattern, err)
	}
	return filepath.Walk(root,
		func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("could not render %s: %s", filePath, err)
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			matched, _ := path.Match(namePattern, strings.ToLower(info.Name()))
			if !matched {
				return nil
			}
			return File(filePath)
		})
}
