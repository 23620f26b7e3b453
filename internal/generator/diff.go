package generator

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	delStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// diffLimit caps the line count diffed. Scaffold files are short; anything
// bigger is not worth a line-by-line comparison in a conflict prompt.
const diffLimit = 5000

// Diff renders a line diff between the existing file and the generated
// content. Returns "" when the contents are identical.
func Diff(path string, existing, newer []byte) string {
	if bytes.Equal(existing, newer) {
		return ""
	}
	if isBinary(existing) || isBinary(newer) {
		return "Binary files differ\n"
	}

	oldLines := splitLines(string(existing))
	newLines := splitLines(string(newer))
	if len(oldLines) > diffLimit || len(newLines) > diffLimit {
		return "Files too large for diff\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("--- "+path+" (existing)") + "\n")
	b.WriteString(headerStyle.Render("+++ "+path+" (generated)") + "\n")

	for _, line := range diffLines(oldLines, newLines) {
		switch line.kind {
		case lineDeleted:
			b.WriteString(delStyle.Render("- "+line.text) + "\n")
		case lineAdded:
			b.WriteString(addStyle.Render("+ "+line.text) + "\n")
		default:
			b.WriteString("  " + line.text + "\n")
		}
	}

	return b.String()
}

type lineKind int

const (
	lineSame lineKind = iota
	lineDeleted
	lineAdded
)

type diffLine struct {
	kind lineKind
	text string
}

// diffLines computes an edit script using a longest-common-subsequence table.
func diffLines(oldLines, newLines []string) []diffLine {
	n, m := len(oldLines), len(newLines)

	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var out []diffLine
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case oldLines[i] == newLines[j]:
			out = append(out, diffLine{lineSame, oldLines[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, diffLine{lineDeleted, oldLines[i]})
			i++
		default:
			out = append(out, diffLine{lineAdded, newLines[j]})
			j++
		}
	}
	for ; i < n; i++ {
		out = append(out, diffLine{lineDeleted, oldLines[i]})
	}
	for ; j < m; j++ {
		out = append(out, diffLine{lineAdded, newLines[j]})
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}
