package layout

import (
	"strconv"
	"strings"
	"time"
)

// ExpandTemplate substitutes header/footer placeholders: {page} (global page
// number), {pages} (total output pages), {date} (YYYY-MM-DD) and {group}.
func ExpandTemplate(tmpl string, page, pages int, date time.Time, group string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	replacer := strings.NewReplacer(
		"{page}", strconv.Itoa(page),
		"{pages}", strconv.Itoa(pages),
		"{date}", date.Format("2006-01-02"),
		"{group}", group,
	)
	return replacer.Replace(tmpl)
}
