package internal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	tt "github.com/glexlang/glex/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// FormatIssuesWithArrows renders issues with a caret pointing at the
// offending column of the source line.
func FormatIssuesWithArrows(issues []tt.Issue, sourceCode *SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(formatIssueHeader(issue))
		builder.WriteString(formatIssueBody(issue, sourceCode))
	}
	return builder.String()
}

func formatIssueHeader(issue tt.Issue) string {
	return errorStyle.Sprint("error: ") + kindStyle.Sprint(issue.Kind) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d:%d", issue.Filename, issue.Line, issue.Column) + "\n"
}

func formatIssueBody(issue tt.Issue, sourceCode *SourceCode) string {
	var result strings.Builder

	if issue.Line < 1 || issue.Line > len(sourceCode.Lines) {
		result.WriteString(messageStyle.Sprintf("%s\n\n", issue.Message))
		return result.String()
	}

	lineNumberStr := fmt.Sprintf("%d", issue.Line)
	padding := strings.Repeat(" ", len(lineNumberStr)-1)
	result.WriteString(lineStyle.Sprintf("  %s|\n", padding))

	raw := sourceCode.Lines[issue.Line-1]
	result.WriteString(lineStyle.Sprintf("%d | ", issue.Line))
	result.WriteString(expandTabs(raw) + "\n")

	// Column math runs on the raw line so tabs expand consistently.
	visualColumn := calculateVisualColumn(raw, issue.Column)
	result.WriteString(lineStyle.Sprintf("  %s| ", padding))
	result.WriteString(strings.Repeat(" ", visualColumn))
	result.WriteString(messageStyle.Sprintf("^ %s\n\n", issue.Message))

	return result.String()
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	runeIndex := 0
	for _, ch := range line {
		if runeIndex+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
		runeIndex++
	}
	return visualColumn
}
