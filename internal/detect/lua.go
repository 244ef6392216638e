package detect

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// DetectFunction is the Lua global a script must define.
const DetectFunction = "detect_prefix"

// ErrNoDetectFunction indicates the script did not define detect_prefix.
var ErrNoDetectFunction = errors.New("detect: script defines no detect_prefix function")

// Lua runs a user-provided detect_prefix(line) Lua function to derive fill
// prefixes, falling back to another detector when the script errors or
// returns a non-string.
type Lua struct {
	mu       sync.Mutex
	state    *lua.LState
	fallback Detector
}

// NewLua loads a Lua script and returns a detector backed by its
// detect_prefix function. The fallback handles script failures; it must not
// be nil.
func NewLua(script string, fallback Detector) (*Lua, error) {
	if fallback == nil {
		return nil, errors.New("detect: nil fallback detector")
	}

	state := lua.NewState()
	if err := state.DoString(script); err != nil {
		state.Close()
		return nil, fmt.Errorf("detect: load script: %w", err)
	}
	if state.GetGlobal(DetectFunction).Type() != lua.LTFunction {
		state.Close()
		return nil, ErrNoDetectFunction
	}

	return &Lua{state: state, fallback: fallback}, nil
}

// DetectPrefix invokes the script's detect_prefix function with the line.
// Any script error or non-string result defers to the fallback detector.
func (l *Lua) DetectPrefix(line string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.state.CallByParam(lua.P{
		Fn:      l.state.GetGlobal(DetectFunction),
		NRet:    1,
		Protect: true,
	}, lua.LString(line))
	if err != nil {
		return l.fallback.DetectPrefix(line)
	}

	ret := l.state.Get(-1)
	l.state.Pop(1)

	s, ok := ret.(lua.LString)
	if !ok {
		return l.fallback.DetectPrefix(line)
	}
	return string(s)
}

// Close releases the Lua state. The detector must not be used afterwards.
func (l *Lua) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Close()
}
