package script

import (
	"github.com/bsv-blockchain/litenode/errors"
)

// stack holds byte string items, the last element is the top.
type stack struct {
	items [][]byte
}

func newStack(items [][]byte) *stack {
	s := &stack{items: make([][]byte, len(items))}
	copy(s.items, items)

	return s
}

func (s *stack) depth() int {
	return len(s.items)
}

func (s *stack) push(b []byte) {
	s.items = append(s.items, b)
}

func (s *stack) pop() ([]byte, error) {
	if len(s.items) == 0 {
		return nil, errors.NewScriptUnderflowError("pop from empty stack")
	}

	b := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]

	return b, nil
}

// peek returns the item idx positions below the top.
func (s *stack) peek(idx int) ([]byte, error) {
	if idx < 0 || idx >= len(s.items) {
		return nil, errors.NewScriptUnderflowError("index %d out of range for stack of depth %d", idx, len(s.items))
	}

	return s.items[len(s.items)-1-idx], nil
}

// remove takes out the item idx positions below the top.
func (s *stack) remove(idx int) ([]byte, error) {
	b, err := s.peek(idx)
	if err != nil {
		return nil, err
	}

	pos := len(s.items) - 1 - idx
	s.items = append(s.items[:pos], s.items[pos+1:]...)

	return b, nil
}

// insert places b so that it ends up idx positions below the top.
func (s *stack) insert(idx int, b []byte) error {
	if idx < 0 || idx > len(s.items) {
		return errors.NewScriptUnderflowError("index %d out of range for stack of depth %d", idx, len(s.items))
	}

	pos := len(s.items) - idx
	s.items = append(s.items, nil)
	copy(s.items[pos+1:], s.items[pos:])
	s.items[pos] = b

	return nil
}

// dupN copies the top n items, keeping their order.
func (s *stack) dupN(n int) error {
	if n > len(s.items) {
		return errors.NewScriptUnderflowError("need %d items, stack depth %d", n, len(s.items))
	}

	for i := 0; i < n; i++ {
		b, _ := s.peek(n - 1)
		s.push(b)
	}

	return nil
}

func (s *stack) snapshot() [][]byte {
	out := make([][]byte, len(s.items))
	copy(out, s.items)

	return out
}
