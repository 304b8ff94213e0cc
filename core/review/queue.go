package review

import "errors"

var ErrQueueExhausted = errors.New("queue already exhausted")

// CurrentItem returns the item under the cursor, or false once the queue is exhausted.
func CurrentItem(state State) (LineItem, bool) {
	if state.Cursor < 0 || state.Cursor >= len(state.Items) {
		return nil, false
	}
	return state.Items[state.Cursor], true
}

// ApplyDecision records status and fields on the current item and moves the cursor to the next one.
// The given state is left untouched; only the item under the cursor differs in the returned state.
func ApplyDecision(state State, status string, fields map[string]interface{}) (State, error) {
	if _, ok := CurrentItem(state); !ok {
		return state, ErrQueueExhausted
	}

	items := make([]LineItem, len(state.Items))
	copy(items, state.Items)

	item := items[state.Cursor].clone()
	for k, v := range fields {
		item[k] = v
	}
	item[StatusField] = status // the decision always wins over a "status" field
	items[state.Cursor] = item

	return State{Items: items, Cursor: state.Cursor + 1}, nil
}

// Reset rewinds the cursor to the first item. Past decisions stay on the items until revisited.
func Reset(state State) State {
	return State{Items: state.Items, Cursor: 0}
}

// Ingest builds a fresh queue from uploaded rows:
// missing schema columns get their default and every item starts Pending.
func Ingest(rows []map[string]interface{}, schema Schema) State {
	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		item := make(LineItem, len(row)+len(schema))
		for k, v := range row {
			item[k] = v
		}
		for col, spec := range schema {
			if _, ok := item[col]; !ok {
				item[col] = spec.defaultValue()
			}
		}
		item[StatusField] = StatusPending
		items = append(items, item)
	}
	return State{Items: items, Cursor: 0}
}
