// Package models defines the records held by the entity store.
// Records are plain values; relationships are expressed by id only.
package models

// Movie is a film credited to a single director. DirectorID is not checked
// against the director collection, so it may dangle.
type Movie struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	DirectorID int32  `json:"directorId"`
}
