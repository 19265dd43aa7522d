package onebot

import (
	"encoding/json"
	"sync"

	"github.com/tidwall/gjson"
	zero "github.com/wdvxdr1123/ZeroBot"
)

type mockCall struct {
	Action string
	Params zero.Params
}

// FOR TESTING
type MockCaller struct {
	mu    sync.Mutex
	calls []mockCall
	data  map[string]any
}

func (m *MockCaller) CallAction(action string, params zero.Params) zero.APIResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mockCall{Action: action, Params: params})

	data, exists := m.data[action]
	if !exists {
		return zero.APIResponse{Status: "failed", RetCode: 100, Wording: "not found"}
	}
	b, _ := json.Marshal(data)
	return zero.APIResponse{Status: "ok", Data: gjson.ParseBytes(b)}
}

func (m *MockCaller) Calls(action string) []mockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ret []mockCall
	for _, c := range m.calls {
		if c.Action == action {
			ret = append(ret, c)
		}
	}
	return ret
}

func (m *MockCaller) Remove(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, action)
}
