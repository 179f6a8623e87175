package rules

import (
	"fmt"
	"regexp"

	"github.com/c360studio/archgate/extract"
	"github.com/c360studio/archgate/finding"
)

// MinIdeaCodeLines is the empty-domain threshold: an Idea file with fewer
// non-blank, non-comment lines draws an advisory warning.
const MinIdeaCodeLines = 10

// domainConditionalRe matches a branch construct whose condition carries a
// domain-meaningful keyword, the signature of business logic leaking into
// the side-effect layer.
var domainConditionalRe = regexp.MustCompile(
	`(?i)\b(?:if|switch|case)\b.*\b(?:mode|state|status|level|type|flag|enable|disable|active|threshold)\b`)

// EmptyIdea returns an advisory warning when an Idea-role file carries
// fewer code lines than the threshold, suggesting a pass-through with the
// domain judgment living elsewhere. codeLines must already be counted with
// the binding's comment rules.
func EmptyIdea(file string, codeLines int) *finding.Finding {
	if codeLines >= MinIdeaCodeLines {
		return nil
	}
	return &finding.Finding{
		Severity: finding.SeverityWarning,
		File:     file,
		Line:     0,
		Rule:     "red-flag-empty-idea",
		Message: fmt.Sprintf("ida_ source has only %d code line(s) (threshold: %d). "+
			"Verify that domain judgment is present, not just pass-through calls.", codeLines, MinIdeaCodeLines),
	}
}

// EmptyIdeaOOP is the identifier-binding variant of EmptyIdea; same
// threshold, binding-specific wording.
func EmptyIdeaOOP(file string, codeLines int) *finding.Finding {
	if codeLines >= MinIdeaCodeLines {
		return nil
	}
	return &finding.Finding{
		Severity: finding.SeverityWarning,
		File:     file,
		Line:     0,
		Rule:     "red-flag-empty-idea",
		Message: fmt.Sprintf("Possible Empty Idea: only %d code line(s) (threshold: %d). "+
			"Verify that domain logic is not in prx_/poi_.", codeLines, MinIdeaCodeLines),
	}
}

// FatPoiesisWholeFile is the include-binding variant: it counts every
// domain-meaningful conditional in the file and reports one file-level
// warning with the total.
func FatPoiesisWholeFile(file string, lines []string) *finding.Finding {
	hits := 0
	for _, line := range lines {
		hits += len(domainConditionalRe.FindAllString(line, -1))
	}
	if hits == 0 {
		return nil
	}
	return &finding.Finding{
		Severity: finding.SeverityWarning,
		File:     file,
		Line:     0,
		Rule:     "red-flag-fat-poiesis",
		Message: fmt.Sprintf("poi_ source contains %d domain-meaningful conditional(s). "+
			"Consider moving domain logic to ida_ or prx_.", hits),
	}
}

// FatPoiesisFirstLine is the identifier-binding variant: it reports the
// first non-comment line carrying a domain-meaningful conditional. At most
// one warning per file.
func FatPoiesisFirstLine(file string, lines []string) *finding.Finding {
	for i, line := range lines {
		if extract.IsCommentLine(line) {
			continue
		}
		if domainConditionalRe.MatchString(line) {
			return &finding.Finding{
				Severity: finding.SeverityWarning,
				File:     file,
				Line:     i + 1,
				Rule:     "red-flag-fat-poiesis",
				Message: "Possible Fat Poiesis: domain-meaningful conditional in poi_ file. " +
					"Consider moving business logic to ida_ or prx_.",
			}
		}
	}
	return nil
}
