// Package layout converts a topology tree into absolute 2D geometry.
//
// # Algorithm
//
// Two passes over the tree:
//
//  1. Sizing (post-order): every node gets a bounding box and two port
//     offsets. Series groups sum widths and take the max height; parallel
//     groups sum heights (plus inter-branch spacing) and take the max width;
//     twoport chains accumulate series widths and shunt stubs.
//  2. Positioning (pre-order): starting from the root at the top-left
//     corner, each node places its children and appends the connecting
//     wires, bus rails, and junction dots to the plan.
//
// The resulting Plan is the sole geometry handoff to the rendering adapter:
// positioned element boxes, wire segments (all axis-aligned), and junctions.
//
// Layout never fails on a tree produced by the parser and is fully
// deterministic: laying out the same tree twice yields identical plans.
package layout
