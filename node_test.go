package octree_test

import (
	"context"
	"testing"

	. "github.com/gfhcs/octree"
)

// TestChildrenRestartable checks that ranging over Children() twice
// yields the same sequence both times (iterators must not consume
// state from the Tree).
func TestChildrenRestartable(t *testing.T) {
	items := []Item[int]{
		{Value: 0, Pos: Vec3{X: 0.1, Y: 0.1, Z: 0.1}},
		{Value: 1, Pos: Vec3{X: 0.9, Y: 0.1, Z: 0.1}},
		{Value: 2, Pos: Vec3{X: 0.1, Y: 0.9, Z: 0.1}},
	}
	tree, err := Build(context.Background(), items, unitCube())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := tree.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	first := collectArity(root)
	second := collectArity(root)
	if first != second {
		t.Fatalf("Children() produced %d then %d children across two ranges", first, second)
	}
}

func collectArity[T any](n Node[T]) int {
	count := 0
	for range n.Children() {
		count++
	}
	return count
}

func TestItemsMatchesChildrenRecursion(t *testing.T) {
	items := make([]Item[int], 40)
	for i := range items {
		items[i] = Item[int]{Value: i, Pos: Vec3{
			X: float64(i%5) / 5,
			Y: float64((i/5)%5) / 5,
			Z: float64(i/25) / 5,
		}}
	}
	tree, err := Build(context.Background(), items, unitCube())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := tree.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	var viaChildren func(n Node[int]) []int
	viaChildren = func(n Node[int]) []int {
		if n.IsLeaf() {
			var out []int
			for v, _ := range n.Items() {
				out = append(out, v)
			}
			return out
		}
		var out []int
		for child := range n.Children() {
			out = append(out, viaChildren(child)...)
		}
		return out
	}

	var viaItems []int
	for v, _ := range root.Items() {
		viaItems = append(viaItems, v)
	}

	recursed := viaChildren(root)
	if len(recursed) != len(viaItems) {
		t.Fatalf("recursive Children() walk yields %d items, Items() shortcut yields %d", len(recursed), len(viaItems))
	}
	for i := range recursed {
		if recursed[i] != viaItems[i] {
			t.Fatalf("index %d: Children()-recursion gave %d, Items() gave %d", i, recursed[i], viaItems[i])
		}
	}
}
