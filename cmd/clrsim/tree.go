package main

import (
	"github.com/npillmayer/clrsim/grammar"
	"github.com/npillmayer/clrsim/lr"
	"github.com/npillmayer/clrsim/lr/sim"
	"github.com/pterm/pterm"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// parseForest rebuilds the partial parse trees of a simulation up to the
// current snapshot, one tree per stack symbol.
func parseForest(s *sim.Simulator) []*treeNode {
	var stack []*treeNode
	history := s.History()
	for i := 1; i <= s.Cursor() && i < len(history); i++ {
		snap := history[i]
		switch snap.Action.Kind {
		case lr.Shift:
			stack = append(stack, &treeNode{label: snap.Symbols[len(snap.Symbols)-1]})
		case lr.Reduce:
			rule := s.Tables().Rule(snap.Action.Target)
			if rule == nil || len(rule.RHS) > len(stack) {
				return stack
			}
			node := &treeNode{label: rule.LHS}
			k := len(stack) - len(rule.RHS)
			node.children = append(node.children, stack[k:]...)
			if rule.IsEpsilon() {
				node.children = []*treeNode{{label: grammar.Epsilon}}
			}
			stack = append(stack[:k], node)
		}
	}
	return stack
}

func leveled(n *treeNode, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: n.label})
	for _, c := range n.children {
		ll = leveled(c, ll, level+1)
	}
	return ll
}

// renderForest prints the partial parse trees of a simulation.
func renderForest(s *sim.Simulator) {
	forest := parseForest(s)
	if len(forest) == 0 {
		pterm.Info.Println("no symbols on the stack")
		return
	}
	var ll pterm.LeveledList
	for _, n := range forest {
		ll = leveled(n, ll, 0)
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}
