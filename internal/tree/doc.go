// Package tree models the sidebar file tree: loading directories from
// disk, tracking which of them are expanded, and projecting the expanded
// portion into the flat list of rows the renderer draws.
//
// Session ties the pieces together. Every mutation re-flattens the
// visible rows and re-clamps the cursor, so the selection always points
// at a real row, even across reloads.
package tree
