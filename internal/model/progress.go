package model

import "encoding/json"

// ProgressRecord is the on-disk progress document.
//
// It is serialized as:
//
//	{
//	  "completedLessons": ["plans/Unit1/intro.md"],
//	  "currentLesson": null
//	}
//
// CompletedLessons keeps insertion order and never holds two entries that
// normalize to the same Key. CurrentLesson is reserved: it is read and written
// back untouched, but nothing in this module sets it. Top-level keys written
// by other tools are kept in Extra and written back as they were.
type ProgressRecord struct {
	CompletedLessons []string `json:"completedLessons"`
	CurrentLesson    *string  `json:"currentLesson"`

	Extra map[string]json.RawMessage `json:"-"`
}

// progressFields is ProgressRecord without its JSON methods.
type progressFields ProgressRecord

// UnmarshalJSON decodes the known fields and keeps every other top-level key
// in Extra.
func (r *ProgressRecord) UnmarshalJSON(data []byte) error {
	var fields progressFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, "completedLessons")
	delete(all, "currentLesson")

	fields.Extra = nil
	if len(all) > 0 {
		fields.Extra = all
	}
	*r = ProgressRecord(fields)
	return nil
}

// MarshalJSON writes the known fields in declaration order. When Extra holds
// keys they are merged in and the object is written with sorted keys.
func (r ProgressRecord) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(progressFields(r))
	if err != nil || len(r.Extra) == 0 {
		return known, err
	}

	merged := make(map[string]json.RawMessage, len(r.Extra)+2)
	for k, v := range r.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// NewProgressRecord returns the zero-value record with a non-nil lesson list,
// so it marshals as [] rather than null.
func NewProgressRecord() ProgressRecord {
	return ProgressRecord{CompletedLessons: []string{}}
}

// Has reports whether key is recorded as completed. Stored entries are
// normalized before comparison.
func (r *ProgressRecord) Has(key Key) bool {
	key = NormalizeKey(string(key))
	for _, done := range r.CompletedLessons {
		if NormalizeKey(done) == key {
			return true
		}
	}
	return false
}

// Add appends key if it is not already recorded. It returns true when the
// record changed.
func (r *ProgressRecord) Add(key Key) bool {
	key = NormalizeKey(string(key))
	if key == "" || r.Has(key) {
		return false
	}
	r.CompletedLessons = append(r.CompletedLessons, string(key))
	return true
}

// Completed returns the normalized set of completed lessons.
func (r *ProgressRecord) Completed() map[Key]bool {
	set := make(map[Key]bool, len(r.CompletedLessons))
	for _, done := range r.CompletedLessons {
		set[NormalizeKey(done)] = true
	}
	return set
}

// Normalize makes sure the lesson list is non-nil.
func (r *ProgressRecord) Normalize() {
	if r.CompletedLessons == nil {
		r.CompletedLessons = []string{}
	}
}
