package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// FormatImportResult renders counts followed by one line per rejected row.
func FormatImportResult(kind string, r *domain.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %s\n",
		StyleGreen.Render(strconv.Itoa(r.Successful)), "imported",
		styledFailed(r.Failed), "failed")
	if len(r.Errors) > 0 {
		b.WriteString("\n")
		headers := []string{"ROW", "REASON"}
		rows := make([][]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			rows = append(rows, []string{strconv.Itoa(e.Row), e.Reason})
		}
		b.WriteString(RenderTable(headers, rows))
	}
	return RenderBox("Import "+kind, strings.TrimRight(b.String(), "\n"))
}

func styledFailed(n int) string {
	if n == 0 {
		return Dim("0")
	}
	return StyleRed.Render(strconv.Itoa(n))
}
