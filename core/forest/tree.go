// Package forest implements a bagged ensemble of CART regression trees with
// randomized per-split feature subsets, bounded depth and leaf sizes, and
// impurity-based feature importances. All structures are exported-field
// structs so a fitted model round-trips through gob unchanged.
package forest

import (
	"sort"

	"golang.org/x/exp/rand"
)

// Node is one node of a regression tree. A node with a nil Left child is a
// leaf; Feature and Threshold are meaningful only on internal nodes.
type Node struct {
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node

	// Value is the mean target of the training samples that reached this
	// node; it is the prediction at leaves
	Value float64
}

func (n *Node) isLeaf() bool {
	return n.Left == nil
}

// Tree is a single fitted regression tree
type Tree struct {
	Root *Node
}

// Predict walks the tree for one feature vector
func (t *Tree) Predict(x []float64) float64 {
	n := t.Root
	for !n.isLeaf() {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

const minImpurity = 1e-12

// treeBuilder grows one tree over a bootstrap sample
type treeBuilder struct {
	x   [][]float64
	y   []float64
	cfg Config
	rng *rand.Rand

	// importances accumulates the total squared-error decrease credited to
	// each feature across all splits of this tree
	importances []float64
}

// grow builds the subtree over the given sample indices
func (b *treeBuilder) grow(indices []int, depth int) *Node {
	n := len(indices)
	sum, sumSq := 0.0, 0.0
	for _, i := range indices {
		sum += b.y[i]
		sumSq += b.y[i] * b.y[i]
	}
	mean := sum / float64(n)
	sse := sumSq - sum*sum/float64(n)

	node := &Node{Value: mean}
	if depth >= b.cfg.MaxDepth || n < b.cfg.MinSamplesSplit || sse <= minImpurity {
		return node
	}

	split, ok := b.bestSplit(indices, sse)
	if !ok {
		return node
	}

	b.importances[split.feature] += sse - split.childrenSSE

	left := make([]int, 0, n)
	right := make([]int, 0, n)
	for _, i := range indices {
		if b.x[i][split.feature] <= split.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	node.Feature = split.feature
	node.Threshold = split.threshold
	node.Left = b.grow(left, depth+1)
	node.Right = b.grow(right, depth+1)
	return node
}

type splitResult struct {
	feature     int
	threshold   float64
	childrenSSE float64
}

// bestSplit scans a random subset of features for the split that most
// reduces the summed squared error, honoring the minimum leaf size
func (b *treeBuilder) bestSplit(indices []int, parentSSE float64) (splitResult, bool) {
	numFeatures := len(b.x[0])
	mtry := b.cfg.MaxFeatures
	if mtry <= 0 || mtry > numFeatures {
		mtry = numFeatures
	}

	best := splitResult{childrenSSE: parentSSE}
	found := false

	perm := b.rng.Perm(numFeatures)
	sorted := make([]int, len(indices))
	for _, feature := range perm[:mtry] {
		copy(sorted, indices)
		sortByFeature(sorted, b.x, feature)

		// Prefix scan: move samples from right to left one at a time and
		// evaluate the SSE of both sides at every distinct value boundary.
		n := len(sorted)
		leftSum, leftSq := 0.0, 0.0
		totalSum, totalSq := 0.0, 0.0
		for _, i := range sorted {
			totalSum += b.y[i]
			totalSq += b.y[i] * b.y[i]
		}

		for pos := 1; pos < n; pos++ {
			yi := b.y[sorted[pos-1]]
			leftSum += yi
			leftSq += yi * yi

			cur := b.x[sorted[pos-1]][feature]
			next := b.x[sorted[pos]][feature]
			if cur == next {
				continue
			}
			if pos < b.cfg.MinSamplesLeaf || n-pos < b.cfg.MinSamplesLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			children := (leftSq - leftSum*leftSum/float64(pos)) +
				(rightSq - rightSum*rightSum/float64(n-pos))

			if children < best.childrenSSE {
				best = splitResult{
					feature:     feature,
					threshold:   (cur + next) / 2,
					childrenSSE: children,
				}
				found = true
			}
		}
	}

	return best, found
}

// sortByFeature sorts sample indices ascending by one feature column
func sortByFeature(indices []int, x [][]float64, feature int) {
	sort.Slice(indices, func(a, b int) bool {
		return x[indices[a]][feature] < x[indices[b]][feature]
	})
}
