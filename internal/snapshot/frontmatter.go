package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Front-matter block format
//
//	---
//	key: "value"
//	---
//
// The block opens on the first line and closes at the next line that is
// exactly "---". Values are written double quoted with the escapes \\ \" \n
// \r \t (and \N \L \P for the Unicode line breaks NEL, LS, PS); other control
// characters are dropped. Unquoted values are accepted on read. Every block we
// write is valid YAML and is read back with a YAML decoder.
const Delimiter = "---"

var (
	ErrNoFrontMatter     = errors.New("no front-matter block")
	ErrUnterminated      = errors.New("front-matter block is not terminated")
	ErrMalformedMetadata = errors.New("malformed front-matter")
)

var valueEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u0085", `\N`,
	"\u2028", `\L`,
	"\u2029", `\P`,
)

// Field is one key of a front-matter block; order is preserved on write.
type Field struct {
	Key   string
	Value string
}

type FrontMatter []Field

// QuoteValue renders v as a double-quoted front-matter value.
func QuoteValue(v string) string {
	v = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) && r != '\u0085' {
			return -1
		}
		return r
	}, v)
	return `"` + valueEscaper.Replace(v) + `"`
}

func (fm FrontMatter) Render() string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	for _, f := range fm {
		fmt.Fprintf(&b, "%s: %s\n", f.Key, QuoteValue(f.Value))
	}
	b.WriteString(Delimiter + "\n")
	return b.String()
}

func (fm FrontMatter) Get(key string) (string, bool) {
	for _, f := range fm {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// ParseFrontMatter splits content into its metadata and the body that
// follows the closing delimiter.
func ParseFrontMatter(content string) (map[string]string, string, error) {
	block, body, err := splitBlock(content)
	if err != nil {
		return nil, "", err
	}
	meta, err := decodeBlock(strings.Join(block, "\n"))
	if err != nil {
		return nil, "", err
	}
	return meta, body, nil
}

// ScanField finds key by matching raw `key:` lines of the block, the way
// hand-written or older snapshots were read. It works on blocks that are not
// valid YAML.
func ScanField(content, key string) (string, bool) {
	block, _, err := splitBlock(content)
	if err != nil {
		return "", false
	}
	for _, line := range block {
		value, found := strings.CutPrefix(strings.TrimRight(line, "\r"), key+":")
		if found {
			return strings.Trim(strings.TrimSpace(value), `"`), true
		}
	}
	return "", false
}

func splitBlock(content string) ([]string, string, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	first, rest, found := strings.Cut(content, "\n")
	if strings.TrimRight(first, "\r") != Delimiter || !found {
		return nil, "", ErrNoFrontMatter
	}

	var block []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, "\r") == Delimiter {
			return block, tail, nil
		}
		if !more {
			return nil, "", ErrUnterminated
		}
		block = append(block, line)
		rest = tail
	}
}

func decodeBlock(block string) (map[string]string, error) {
	meta := map[string]string{}
	if strings.TrimSpace(block) == "" {
		return meta, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			meta[k] = ""
		case string:
			meta[k] = v
		default:
			meta[k] = fmt.Sprint(v)
		}
	}
	return meta, nil
}
