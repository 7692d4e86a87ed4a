package output

import (
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/exchange"
)

var reIndexSuffix = regexp.MustCompile(`\.(\d+)$`)

type FileWriter struct {
	fullPath string
}

// NewFileWriter picks the download destination: OutputFile when set,
// otherwise the last segment of the response URL in the working directory.
func NewFileWriter(responseURL string, options *Options) *FileWriter {
	var fullPath string

	if options.OutputFile == "" {
		fullPath = "./" + baseName(responseURL)
	} else {
		fullPath = options.OutputFile
	}

	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}

	return &FileWriter{
		fullPath: fullPath,
	}
}

func baseName(rawURL string) string {
	name := "index"
	if u, err := url.Parse(rawURL); err == nil {
		if b := path.Base(u.Path); b != "/" && b != "." && b != "" {
			name = b
		}
	}
	return name
}

func makeNonOverlappingFilename(path string) string {
	_, err := os.Stat(path)
	if err == nil {
		newPath := reIndexSuffix.ReplaceAllStringFunc(path, func(index string) string {
			i, err := strconv.Atoi(strings.TrimPrefix(index, "."))
			if err != nil {
				panic(err)
			}
			i++
			return fmt.Sprintf(".%d", i)
		})
		if path == newPath {
			path = fmt.Sprintf("%s.%d", path, 1)
		} else {
			path = newPath
		}
		path = makeNonOverlappingFilename(path)
	}
	return path
}

// Write saves the response body and returns a one-line summary.
func (f *FileWriter) Write(resp *exchange.Response) (string, error) {
	if err := ioutil.WriteFile(f.fullPath, resp.Body, 0644); err != nil {
		return "", errors.Wrapf(err, "writing '%s'", f.fullPath)
	}
	return fmt.Sprintf("Downloaded %s to %s", bytefmt.ByteSize(uint64(len(resp.Body))), f.Filename()), nil
}

func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}
