// Package extract provides extension resolution kinds and helpers that pick
// values out of resolved bodies.
package extract
