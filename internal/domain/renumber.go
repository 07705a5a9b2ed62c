package domain

import "fmt"

// LineItemCode builds the dotted "<workstream>.<position>" code.
func LineItemCode(workstreamNumber, position int) string {
	return fmt.Sprintf("%d.%d", workstreamNumber, position)
}

// RenumberWorkstreams returns a copy of ws numbered 1..N in slice order,
// with every line item code rewritten to the new workstream number.
func RenumberWorkstreams(ws []Workstream) []Workstream {
	out := make([]Workstream, len(ws))
	for i, w := range ws {
		w.Number = i + 1
		w.LineItems = RenumberLineItems(w.Number, w.LineItems)
		out[i] = w
	}
	return out
}

// RenumberLineItems returns a copy of items coded "<n>.1", "<n>.2", ...
// in slice order.
func RenumberLineItems(workstreamNumber int, items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, li := range items {
		li.Number = LineItemCode(workstreamNumber, i+1)
		out[i] = li
	}
	return out
}
