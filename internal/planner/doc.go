// Package planner decides where each source icon goes and builds the
// ordered list of copy instructions the pipeline executes.
//
// Build is pure with respect to the catalog mapping: it only reads the
// filesystem through the collision resolver's on-disk check.
package planner
