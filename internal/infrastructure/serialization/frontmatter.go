package serialization

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrNoFrontmatter is returned when a document does not open with a YAML header
var ErrNoFrontmatter = errors.New("document has no frontmatter")

// MarshalFrontmatter renders meta as a YAML header followed by body
func MarshalFrontmatter(meta any, body string) ([]byte, error) {
	header, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(header)
	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalFrontmatter decodes the YAML header of data into meta and returns
// the body with surrounding blank lines removed
func UnmarshalFrontmatter(data []byte, meta any) (string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	lines := strings.Split(text, "\n")
	if strings.TrimSpace(lines[0]) != delimiter {
		return "", ErrNoFrontmatter
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return "", fmt.Errorf("unterminated frontmatter")
	}

	header := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")

	if strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), meta); err != nil {
			return "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
		}
	}
	return strings.Trim(body, "\n"), nil
}
