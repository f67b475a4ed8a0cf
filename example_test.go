package octree_test

import (
	"context"
	"fmt"
	"time"

	"github.com/gfhcs/octree"
)

func ExampleBuild() {
	items := []octree.Item[string]{
		{Value: "a", Pos: octree.Vec3{X: 0.25, Y: 0.25, Z: 0.25}},
		{Value: "b", Pos: octree.Vec3{X: 0.75, Y: 0.75, Z: 0.75}},
	}
	bound := octree.NewAABB(octree.Vec3{X: 0, Y: 0, Z: 0}, octree.Vec3{X: 1, Y: 1, Z: 1})

	tree, err := octree.Build(context.Background(), items, bound)
	if err != nil {
		fmt.Println(err)
		return
	}

	root, _ := tree.Root()
	fmt.Println(root.Arity())
	// Output:
	// 2
}

func ExampleBuild_phaseObserver() {
	items := []octree.Item[int]{
		{Value: 1, Pos: octree.Vec3{X: 0.1, Y: 0.1, Z: 0.1}},
		{Value: 2, Pos: octree.Vec3{X: 0.9, Y: 0.1, Z: 0.1}},
	}
	bound := octree.NewAABB(octree.Vec3{X: 0, Y: 0, Z: 0}, octree.Vec3{X: 1, Y: 1, Z: 1})

	seen := map[string]bool{}
	_, err := octree.Build(context.Background(), items, bound, func(phase string, _ time.Duration) {
		seen[phase] = true
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(seen["validate"], seen["morton"], seen["sort"], seen["construct"])
	// Output:
	// true true true true
}

func ExampleTree_Compress() {
	items := []octree.Item[int]{
		{Value: 1, Pos: octree.Vec3{X: 0.1, Y: 0.1, Z: 0.1}},
		{Value: 2, Pos: octree.Vec3{X: 0.9, Y: 0.1, Z: 0.1}},
		{Value: 3, Pos: octree.Vec3{X: 0.1, Y: 0.9, Z: 0.1}},
	}
	bound := octree.NewAABB(octree.Vec3{X: 0, Y: 0, Z: 0}, octree.Vec3{X: 1, Y: 1, Z: 1})

	tree, _ := octree.Build(context.Background(), items, bound)
	compact := tree.Compress(context.Background())
	fmt.Println(compact.Len() == tree.Len())
	// Output:
	// true
}

func ExampleAABB_String() {
	b := octree.NewAABB(octree.Vec3{X: 0, Y: 0, Z: 0}, octree.Vec3{X: 1, Y: 2, Z: 3})
	fmt.Println(b)
	// Output:
	// AABB(origin=(0, 0, 0), size=(1, 2, 3))
}
