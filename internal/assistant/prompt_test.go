package assistant

import (
	"strings"
	"testing"

	"github.com/linnemanlabs/aegis/internal/alert"
)

func TestComposePrompt(t *testing.T) {
	t.Parallel()

	got := ComposePrompt(&alert.Alert{
		Type:        "Data Exfiltration",
		Description: "Large outbound transfer to unknown host",
	})
	want := "Analyze this alert: Data Exfiltration - Large outbound transfer to unknown host"
	if got != want {
		t.Errorf("ComposePrompt = %q, want %q", got, want)
	}
}

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	alerts := []alert.Alert{
		{Severity: alert.SeverityCritical, Type: "Malware", Target: "DB-Server-01", Status: alert.StatusOpen, Description: "Trojan detected"},
		{Severity: alert.SeverityLow, Type: "Port Scan", Target: "edge-fw", Status: alert.StatusResolved, Description: "Scan from known researcher"},
	}

	got := SystemPrompt(alerts)

	if !strings.Contains(got, "- CRITICAL: Malware on DB-Server-01 - Trojan detected") {
		t.Errorf("prompt missing open alert line:\n%s", got)
	}
	if strings.Contains(got, "Port Scan") {
		t.Errorf("prompt must exclude resolved alerts:\n%s", got)
	}
	if !strings.Contains(got, "SOC analyst") {
		t.Error("prompt missing role instruction")
	}
}

func TestSystemPromptEmpty(t *testing.T) {
	t.Parallel()

	got := SystemPrompt(nil)
	if !strings.Contains(got, "Active Alerts:") {
		t.Errorf("prompt missing section header:\n%s", got)
	}
}
