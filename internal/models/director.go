// Package models defines the records held by the entity store.
// Records are plain values; relationships are expressed by id only.
package models

type Director struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
