package repository

import (
	"bufio"
	"io"
	"net/url"
	"strings"

	"github.com/cperrin88/vpmsync/pkg/model"
)

// ImportList is the result of parsing a repository list file.
type ImportList struct {
	Repositories     []model.RepositoryDescriptor `json:"repositories"`
	UnparseableLines []string                     `json:"unparseable_lines"`
}

// ParseList reads a repository list: one repository per line, the URL first,
// followed by optional Name=Value headers whose values are percent-encoded.
// Blank lines and lines starting with # are skipped. Lines that cannot be
// parsed are returned verbatim in UnparseableLines.
func ParseList(r io.Reader) (*ImportList, error) {
	list := &ImportList{
		Repositories:     []model.RepositoryDescriptor{},
		UnparseableLines: []string{},
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		desc, ok := parseLine(trimmed)
		if !ok {
			list.UnparseableLines = append(list.UnparseableLines, line)
			continue
		}
		list.Repositories = append(list.Repositories, desc)
	}
	if err := scanner.Err(); err != nil {
		return nil, Wrap(err, "failed to read repository list")
	}
	return list, nil
}

func parseLine(line string) (model.RepositoryDescriptor, bool) {
	fields := strings.Fields(line)
	u, err := ParseURL(fields[0])
	if err != nil {
		return model.RepositoryDescriptor{}, false
	}
	desc := model.RepositoryDescriptor{URL: u}
	for _, field := range fields[1:] {
		name, rawValue, found := strings.Cut(field, "=")
		if !found || !validHeaderName(name) {
			return model.RepositoryDescriptor{}, false
		}
		value, err := url.PathUnescape(rawValue)
		if err != nil {
			return model.RepositoryDescriptor{}, false
		}
		if _, exists := desc.Headers.Get(name); exists {
			return model.RepositoryDescriptor{}, false
		}
		desc.Headers = append(desc.Headers, model.Header{Name: name, Value: value})
	}
	return desc, true
}

// validHeaderName reports whether name is a non-empty RFC 7230 token.
func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0:
		default:
			return false
		}
	}
	return true
}

// FormatList renders descriptors in the format read by ParseList.
func FormatList(descriptors []model.RepositoryDescriptor) string {
	var b strings.Builder
	for _, desc := range descriptors {
		if desc.URL == nil {
			continue
		}
		b.WriteString(desc.URL.String())
		for _, h := range desc.Headers {
			b.WriteByte(' ')
			b.WriteString(h.Name)
			b.WriteByte('=')
			b.WriteString(url.PathEscape(h.Value))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
