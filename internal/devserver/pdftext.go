package devserver

import (
	"bytes"
	"compress/zlib"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/jobpilot/internal/types"
)

// maxStreamBytes bounds a single decompressed content stream.
const maxStreamBytes = 8 << 20

var (
	streamPattern = regexp.MustCompile(`(?s)<<(.*?)>>\s*stream\r?\n(.*?)\r?\nendstream`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// ExtractPDFText returns the text drawn by the PDF's content streams.
// Only literal strings shown with Tj, TJ, ' and " are recovered; fonts with custom encodings come out garbled.
func ExtractPDFText(pdf []byte) string {
	var sb strings.Builder
	for _, m := range streamPattern.FindAllSubmatch(pdf, -1) {
		dict, data := m[1], m[2]
		if bytes.Contains(dict, []byte("/FlateDecode")) {
			inflated, err := inflate(data)
			if err != nil {
				continue
			}
			data = inflated
		} else if bytes.Contains(dict, []byte("/Filter")) {
			continue
		}
		showText(&sb, data)
	}
	return strings.TrimSpace(collapseBlankLines(sb.String()))
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, maxStreamBytes))
}

// showText scans a content stream, writing string operands and turning line moves into newlines.
func showText(sb *strings.Builder, content []byte) {
	inText := false
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '(':
			s, end := readLiteral(content, i)
			if inText {
				sb.WriteString(s)
			}
			i = end
		case isOperator(content, i, "BT"):
			inText = true
			i++
		case isOperator(content, i, "ET"):
			inText = false
			sb.WriteByte('\n')
			i++
		case isOperator(content, i, "T*"), isOperator(content, i, "Td"), isOperator(content, i, "TD"):
			if inText {
				sb.WriteByte('\n')
			}
			i++
		case c == '\'' || c == '"':
			if inText {
				sb.WriteByte('\n')
			}
		}
	}
}

func isOperator(content []byte, i int, op string) bool {
	if !bytes.HasPrefix(content[i:], []byte(op)) {
		return false
	}
	before := i == 0 || isDelimiter(content[i-1])
	after := i+len(op) >= len(content) || isDelimiter(content[i+len(op)])
	return before && after
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\f', '[', ']', '(', ')', '<', '>', '/':
		return true
	}
	return false
}

// readLiteral decodes the PDF string literal starting at content[start] == '('.
// It returns the text and the index of the closing parenthesis.
func readLiteral(content []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	for i := start; i < len(content); i++ {
		c := content[i]
		switch c {
		case '\\':
			if i+1 >= len(content) {
				return sb.String(), i
			}
			i++
			switch e := content[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r', 't', 'b', 'f':
				sb.WriteByte(' ')
			case '\r', '\n':
			default:
				if e >= '0' && e <= '7' {
					v, n := 0, 0
					for n < 3 && i < len(content) && content[i] >= '0' && content[i] <= '7' {
						v = v*8 + int(content[i]-'0')
						i++
						n++
					}
					i--
					sb.WriteByte(byte(v))
				} else {
					sb.WriteByte(e)
				}
			}
		case '(':
			if depth > 0 {
				sb.WriteByte(c)
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), len(content)
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// ParseResume builds a résumé from uploaded PDF bytes.
// The name is the first short line of text, or the file name when the PDF has no extractable text.
func ParseResume(filename string, pdf []byte) types.Resume {
	text := ExtractPDFText(pdf)

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			if len(line) <= 60 && !emailPattern.MatchString(line) {
				name = line
			}
			break
		}
	}

	return types.Resume{
		Name:       name,
		Text:       text,
		Email:      emailPattern.FindString(text),
		Skills:     ExtractSkills(text),
		Experience: []types.Experience{},
	}
}
