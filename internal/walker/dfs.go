package walker

import (
	"fmt"
)

type node struct {
	path  string
	isDir bool
}

// dfs 深度优先遍历的待处理栈
type dfs struct {
	nodes []node
}

func newDFS() *dfs {
	return &dfs{
		nodes: make([]node, 0),
	}
}

func (s *dfs) Size() int {
	return len(s.nodes)
}

func (s *dfs) HasNext() bool {
	return len(s.nodes) > 0
}

func (s *dfs) Pop() (node, error) {
	if len(s.nodes) <= 0 {
		return node{}, fmt.Errorf("walk stack is empty")
	}
	n := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return n, nil
}

// Push adds nodes so that the first argument is popped first.
func (s *dfs) Push(nodes ...node) {
	for i := len(nodes) - 1; i >= 0; i-- {
		s.nodes = append(s.nodes, nodes[i])
	}
}
