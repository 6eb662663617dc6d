package ui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// Run drives the model until the user quits and reports the value picked
// with the return key, if any. Extra program options let the caller swap
// the input when stdin carries the document being explored.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) (any, bool, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	prog := tea.NewProgram(m, opts...)

	final, err := prog.Run()
	if err != nil {
		return nil, false, fmt.Errorf("explorer terminated: %w", err)
	}
	fm, ok := final.(*Model)
	if !ok {
		return nil, false, nil
	}
	value, picked := fm.Returned()
	return value, picked, nil
}
