package mdc

import (
	"strings"
	"sync"
)

// fakeCommander отвечает заранее заданными токенами и считает вызовы.
type fakeCommander struct {
	mu        sync.Mutex
	responses map[string][]string
	errs      map[string]error
	panicOn   string
	calls     []string
}

func newFakeCommander(responses map[string][]string) *fakeCommander {
	return &fakeCommander{responses: responses, errs: map[string]error{}}
}

func (f *fakeCommander) Execute(command string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, command)
	if command == f.panicOn {
		panic("decoder blew up")
	}
	if err, ok := f.errs[command]; ok {
		return nil, err
	}
	tokens, ok := f.responses[command]
	if !ok {
		return []string{}, nil
	}
	return append([]string(nil), tokens...), nil
}

func (f *fakeCommander) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// onlineMachine - ответы станка в MDI с загруженными данными.
func onlineMachine() map[string][]string {
	return map[string][]string{
		"Q100":      {"SERIAL", "NUMBER,", "1234567"},
		"Q104":      {"MODE,", "(MDI)"},
		"Q200":      {"TOOL", "CHANGES,", "42"},
		"Q201":      {"USING", "TOOL,", "7"},
		"Q300":      {"Q300,", "00012:34:56"},
		"Q301":      {"Q301,", "00001:02:03"},
		"Q303":      {"Q303,", "000:00:45"},
		"Q304":      {"Q304,", "000:00:47"},
		"Q402":      {"M30", "#1,", "5"},
		"Q403":      {"M30", "#2,", "3"},
		"Q500":      {"PROGRAM,", "MDI,", "IDLE"},
		"Q600 5041": {"MACRO,", "5041,", "12.500"},
		"Q600 5042": {"MACRO,", "5042,", "-3.25"},
		"Q600 5043": {"MACRO,", "5043,", "0.1"},
		"Q600 3027": {"MACRO,", "3027,", "1200."},
	}
}

// tokenized прогоняет ответы через Tokenize, как это делает Protocol.
func tokenized(responses map[string][]string) map[string][]string {
	out := make(map[string][]string, len(responses))
	for cmd, tokens := range responses {
		out[cmd] = Tokenize(strings.Join(tokens, " "))
	}
	return out
}

func newTestAdapter(responses map[string][]string) (*MdcAdapter, *fakeCommander) {
	cmd := newFakeCommander(tokenized(responses))
	return NewMdcAdapter(cmd, nil), cmd
}
