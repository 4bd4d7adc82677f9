// Package call provides the record of a voice verification call attempt and
// its state machine. A parcel can have many attempts but at most one active.
package call
