package scale

import (
	"fmt"

	lua "github.com/Shopify/go-lua"
)

// LoadScript runs a Lua height script from a file and merges its entries over
// the defaults. The script must return a table of category = height pairs,
// for example:
//
//	return { humanoid = 1.8, giant = 4.2, troll = 3.1 }
func LoadScript(path string) (*Table, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load height script: %w", err)
	}
	return mergeScriptTable(state)
}

// LoadScriptSource is LoadScript for in-memory script source.
func LoadScriptSource(source string) (*Table, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadString(state, source); err != nil {
		return nil, fmt.Errorf("load height script: %w", err)
	}
	return mergeScriptTable(state)
}

func mergeScriptTable(state *lua.State) (*Table, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run height script: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return nil, fmt.Errorf("height script must return a table")
	}

	table := DefaultTable()
	index := state.AbsIndex(-1)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString && state.TypeOf(-1) == lua.TypeNumber {
			key, _ := state.ToString(-2)
			value, _ := state.ToNumber(-1)
			if value > 0 {
				table.heights[Category(key)] = value
			}
		}
		state.Pop(1)
	}
	state.Pop(1)

	return table, nil
}
