package claude

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/linnemanlabs/aegis/internal/assistant"
)

func TestToSDKMessages(t *testing.T) {
	t.Parallel()

	turns := []assistant.Turn{
		{Role: assistant.RoleUser, Content: "Analyze this alert: Phishing - fake invoice"},
		{Role: assistant.RoleAssistant, Content: "Risk: Medium"},
		{Role: assistant.RoleUser, Content: "what should I do?"},
	}

	msgs := toSDKMessages(turns)
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}

	wantRoles := []anthropic.MessageParamRole{
		anthropic.MessageParamRoleUser,
		anthropic.MessageParamRoleAssistant,
		anthropic.MessageParamRoleUser,
	}
	for i, want := range wantRoles {
		if msgs[i].Role != want {
			t.Errorf("msgs[%d].Role = %q, want %q", i, msgs[i].Role, want)
		}
	}

	if len(msgs[0].Content) != 1 || msgs[0].Content[0].OfText == nil {
		t.Fatal("expected a single text block")
	}
	if got := msgs[0].Content[0].OfText.Text; got != turns[0].Content {
		t.Errorf("text = %q, want %q", got, turns[0].Content)
	}
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	msg := &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "Risk: High"},
		},
	}
	if got := textContent(msg); got != "Risk: High" {
		t.Errorf("textContent = %q, want %q", got, "Risk: High")
	}
}

func TestTextContentSkipsNonText(t *testing.T) {
	t.Parallel()

	msg := &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "tool_use"},
			{Type: "text", Text: "after the tool block"},
		},
	}
	if got := textContent(msg); got != "after the tool block" {
		t.Errorf("textContent = %q, want %q", got, "after the tool block")
	}
}

func TestTextContentEmpty(t *testing.T) {
	t.Parallel()

	if got := textContent(&anthropic.Message{}); got != "" {
		t.Errorf("textContent = %q, want empty", got)
	}
}
