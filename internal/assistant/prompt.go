package assistant

import (
	"fmt"
	"strings"

	"github.com/linnemanlabs/aegis/internal/alert"
)

// ComposePrompt builds the pending input used when an operator asks the
// co-pilot to analyze a specific alert from the triage view.
func ComposePrompt(al *alert.Alert) string {
	return fmt.Sprintf("Analyze this alert: %s - %s", al.Type, al.Description)
}

// SystemPrompt builds the SOC analyst system prompt, grounding the backend
// in the currently active alert set.
func SystemPrompt(alerts []alert.Alert) string {
	var b strings.Builder
	for _, a := range alerts {
		if a.Status == alert.StatusResolved {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s on %s - %s\n",
			strings.ToUpper(string(a.Severity)), a.Type, a.Target, a.Description)
	}

	return fmt.Sprintf(`You are a SOC analyst AI. Be concise and actionable.

Active Alerts:
%s
Format responses:
- Risk: [High/Medium/Low]
- Action: [1-2 specific steps]
- Impact: [Brief consequence]

Keep under 200 words unless asked for details.`, b.String())
}
