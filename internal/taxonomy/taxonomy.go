// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy holds the read-only classification vocabularies used to
// tag generated topic trees: disciplines, educational contexts and education
// sectors. Tables are built once at package init and never mutated.
package taxonomy

// NoSelection is the sentinel entry present in every table. It maps to an
// empty identifier, meaning "do not classify".
const NoSelection = "Keine Vorgabe"

// Defaults preselected by the generation form.
const (
	DefaultDiscipline         = "Physik"
	DefaultEducationalContext = "Sekundarstufe II"
	DefaultEducationSector    = "Allgemeinbildend"
)

// Entry is one name → identifier pair of a vocabulary.
type Entry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Table is an ordered, immutable vocabulary. Order is the presentation
// order of the options offered to callers.
type Table struct {
	entries []Entry
	byName  map[string]string
}

func newTable(entries []Entry) *Table {
	t := &Table{
		entries: entries,
		byName:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		t.byName[e.Name] = e.ID
	}
	return t
}

// Lookup returns the identifier for name and whether the name is known.
func (t *Table) Lookup(name string) (string, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Resolve returns the identifier for name, falling back to the NoSelection
// entry for unknown names. It never fails.
func (t *Table) Resolve(name string) string {
	if id, ok := t.byName[name]; ok {
		return id
	}
	return t.byName[NoSelection]
}

// NameOf returns the first name mapped to id. Empty ids and unknown ids
// yield "".
func (t *Table) NameOf(id string) string {
	if id == "" {
		return ""
	}
	for _, e := range t.entries {
		if e.ID == id {
			return e.Name
		}
	}
	return ""
}

// Contains reports whether name is part of the vocabulary.
func (t *Table) Contains(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names returns the option names in presentation order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the table entries in presentation order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries including NoSelection.
func (t *Table) Len() int { return len(t.entries) }
