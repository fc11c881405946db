// Package header provides the case-insensitive header types shared by the
// session and transport layers.
//
// Map keeps insertion order and the first-seen spelling of each name for the
// wire, while every lookup folds case. Normalize collapses a wire-ordered field
// list into a lowercase-keyed map where the last duplicate wins.
package header
