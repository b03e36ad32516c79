// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package cache

import (
	"sort"
	"strings"
	"sync"
)

// indexNode is a node in the prefix tree.
type indexNode struct {
	children map[rune]*indexNode
	isEnd    bool
	value    string // original-cased title stored at the terminal node
	rank     int    // catalog position, used to order completions
}

// PrefixIndex is a thread-safe, case-insensitive prefix tree over the catalog
// display titles. Lookups run in O(m + k) for a prefix of length m with k
// completions, and completions come back in catalog order (insertion rank),
// matching the ordering of the unfiltered options list.
type PrefixIndex struct {
	mu   sync.RWMutex
	root *indexNode
	size int
}

// NewPrefixIndex creates an empty title prefix index.
func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{root: newIndexNode()}
}

func newIndexNode() *indexNode {
	return &indexNode{children: make(map[rune]*indexNode)}
}

// Insert adds a title with its catalog position. Matching is
// case-insensitive; the stored value keeps its original casing. A duplicate
// title keeps its first (lowest) rank. Returns true for a new insertion.
func (idx *PrefixIndex) Insert(value string, rank int) bool {
	if value == "" {
		return false
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	node := idx.root
	for _, ch := range strings.ToLower(value) {
		if node.children[ch] == nil {
			node.children[ch] = newIndexNode()
		}
		node = node.children[ch]
	}

	if node.isEnd {
		return false
	}
	node.isEnd = true
	node.value = value
	node.rank = rank
	idx.size++
	return true
}

// Search returns every title starting with the given prefix, in catalog
// order. The empty prefix returns all titles. Matching is case-insensitive.
func (idx *PrefixIndex) Search(prefix string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	node := idx.root
	for _, ch := range strings.ToLower(prefix) {
		node = node.children[ch]
		if node == nil {
			return []string{}
		}
	}

	var matches []*indexNode
	collect(node, &matches)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.value)
	}
	return out
}

// Len returns the number of indexed titles.
func (idx *PrefixIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// collect gathers all terminal nodes under n.
func collect(n *indexNode, matches *[]*indexNode) {
	if n.isEnd {
		*matches = append(*matches, n)
	}
	for _, child := range n.children {
		collect(child, matches)
	}
}
