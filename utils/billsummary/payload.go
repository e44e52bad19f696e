package billsummary

import "strings"

// DefaultTitle heads the shareable summary.
const DefaultTitle = "T-Mobile Bill Summary"

// SharePhone formats a phone for the summary: "(555) 123-4567" becomes
// "x555-123-4567". The leading marker stops scanners reading it as a number.
func SharePhone(phone string) string {
	s := strings.NewReplacer("(", "", ")", "").Replace(phone)
	s = strings.Join(strings.Fields(s), "-")
	return "x" + s
}

// BuildPayload renders the title, then one block per line type with a
// "<phone>: $<cost>" entry per line, blocks separated by a blank line.
func BuildPayload(title string, lines []FinalLineSummary) string {
	if title == "" {
		title = DefaultTitle
	}
	out := []string{title, ""}
	for _, g := range GroupByType(lines) {
		out = append(out, string(g.Type)+" Lines:")
		for _, l := range g.Lines {
			out = append(out, "  "+SharePhone(l.Phone)+": $"+l.Cost.StringFixed(2))
		}
		out = append(out, "")
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
