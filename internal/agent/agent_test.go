package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Yasser-Essafi/SRM/internal/repository"
	"github.com/Yasser-Essafi/SRM/internal/service"
)

// scriptedLLM returns the queued responses in order and records every
// message list it was called with.
type scriptedLLM struct {
	responses []Response
	calls     [][]Message
}

func (l *scriptedLLM) Complete(ctx context.Context, messages []Message, tools []ToolSpec) (*Response, error) {
	l.calls = append(l.calls, append([]Message(nil), messages...))
	if len(l.responses) == 0 {
		return nil, errors.New("no scripted response left")
	}
	resp := l.responses[0]
	l.responses = l.responses[1:]
	return &resp, nil
}

func demoToolbox() *Toolbox {
	store := repository.NewMemoryStore(repository.DemoDataset())
	return NewToolbox(service.NewStatusService(store, zerolog.Nop()))
}

func TestReplyWithoutTools(t *testing.T) {
	llm := &scriptedLLM{responses: []Response{{Content: "مرحبا! كيف يمكنني مساعدتك؟"}}}
	a := New(llm, demoToolbox(), 4, zerolog.Nop())

	reply, err := a.Reply(context.Background(), nil, "سلام")
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if reply != "مرحبا! كيف يمكنني مساعدتك؟" {
		t.Fatalf("reply = %q", reply)
	}

	first := llm.calls[0]
	if first[0].Role != "system" {
		t.Fatalf("first message role = %q, want system", first[0].Role)
	}
	if first[len(first)-1].Role != "user" || first[len(first)-1].Content != "سلام" {
		t.Fatalf("last message = %+v, want the user turn", first[len(first)-1])
	}
}

func TestReplyExecutesToolsInCallOrder(t *testing.T) {
	waterArgs := json.RawMessage(`{"contract_number": "3701455890"}`)
	electricityArgs := json.RawMessage(`{"contract_number": "4801567001 / 2025986"}`)

	llm := &scriptedLLM{responses: []Response{
		{ToolCalls: []ToolCall{
			{ID: "call-1", Name: "check_water_service", Arguments: waterArgs},
			{ID: "call-2", Name: "check_electricity_service", Arguments: electricityArgs},
		}},
		{Content: "done"},
	}}
	a := New(llm, demoToolbox(), 4, zerolog.Nop())

	reply, err := a.Reply(context.Background(), nil, "الماء والضو مقطوعين، 3701455890 و 4801567001 / 2025986")
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if reply != "done" {
		t.Fatalf("reply = %q, want done", reply)
	}

	// Second round must carry the assistant turn plus one tool result per
	// call, in the order the model asked.
	second := llm.calls[1]
	n := len(second)
	if second[n-3].Role != "assistant" || len(second[n-3].ToolCalls) != 2 {
		t.Fatalf("message %d = %+v, want assistant turn with 2 tool calls", n-3, second[n-3])
	}
	if second[n-2].Role != "tool" || second[n-2].ToolCallID != "call-1" {
		t.Fatalf("message %d = %+v, want water tool result first", n-2, second[n-2])
	}
	if !strings.Contains(second[n-2].Content, "[PAYMENT_STATUS: UNPAID]") {
		t.Fatalf("water tool result = %q, want unpaid block", second[n-2].Content)
	}
	if second[n-1].Role != "tool" || second[n-1].ToolCallID != "call-2" {
		t.Fatalf("message %d = %+v, want electricity tool result second", n-1, second[n-1])
	}
}

func TestReplyCarriesHistory(t *testing.T) {
	llm := &scriptedLLM{responses: []Response{{Content: "ok"}}}
	a := New(llm, demoToolbox(), 4, zerolog.Nop())

	history := []Message{
		{Role: "user", Content: "الماء مقطوع"},
		{Role: "assistant", Content: "عطيني رقم العقد من فضلك"},
	}
	if _, err := a.Reply(context.Background(), history, "3701455890"); err != nil {
		t.Fatalf("reply failed: %v", err)
	}

	sent := llm.calls[0]
	if len(sent) != 4 {
		t.Fatalf("messages sent = %d, want system + 2 history + user", len(sent))
	}
	if sent[1].Content != "الماء مقطوع" || sent[2].Content != "عطيني رقم العقد من فضلك" {
		t.Fatalf("history not preserved: %+v", sent[1:3])
	}
}

func TestReplyToolLoopLimit(t *testing.T) {
	args := json.RawMessage(`{"contract_number": "3701455886"}`)
	endless := Response{ToolCalls: []ToolCall{{ID: "x", Name: "check_water_service", Arguments: args}}}
	llm := &scriptedLLM{responses: []Response{endless, endless, endless}}
	a := New(llm, demoToolbox(), 2, zerolog.Nop())

	_, err := a.Reply(context.Background(), nil, "3701455886")
	if !errors.Is(err, ErrToolLoopExceeded) {
		t.Fatalf("err = %v, want ErrToolLoopExceeded", err)
	}
	if len(llm.calls) != 2 {
		t.Fatalf("rounds = %d, want 2", len(llm.calls))
	}
}
