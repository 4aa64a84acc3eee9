package interp

import "github.com/l-hoang/chefgo/internal/ast"

// stack backs one mixing bowl or baking dish. The top is the last
// element; stir and pour iterate it bottom-to-top.
type stack struct {
	items []ast.Value
}

func (s *stack) push(v ast.Value) {
	s.items = append(s.items, v)
}

func (s *stack) pop() (ast.Value, bool) {
	if len(s.items) == 0 {
		return ast.Value{}, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

func (s *stack) peek() (ast.Value, bool) {
	if len(s.items) == 0 {
		return ast.Value{}, false
	}
	return s.items[len(s.items)-1], true
}

func (s *stack) setTop(v ast.Value) {
	s.items[len(s.items)-1] = v
}

func (s *stack) len() int { return len(s.items) }

func (s *stack) clear() { s.items = nil }

func (s *stack) clone() *stack {
	c := &stack{items: make([]ast.Value, len(s.items))}
	copy(c.items, s.items)
	return c
}

// stir removes the top value and reinserts it n positions further
// down; with fewer than n+1 values it lands on the bottom.
func (s *stack) stir(n int) {
	if len(s.items) < 2 || n <= 0 {
		return
	}
	top := len(s.items) - 1
	v := s.items[top]
	at := top - n
	if at < 0 {
		at = 0
	}
	copy(s.items[at+1:], s.items[at:top])
	s.items[at] = v
}
