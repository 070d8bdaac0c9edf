// AngelaMos | 2026
// state.go

// Package lifecycle models the active/deleted state shared by customers,
// sites and jobs.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/site-atlas/internal/core"
)

type State string

const (
	Active  State = "active"
	Deleted State = "deleted"
)

// Record is embedded by every atlas entity. Deleted is true exactly when
// DeletedAt is set; only the methods below should change either field.
type Record struct {
	Deleted   bool       `db:"deleted"    json:"deleted"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// SoftDelete moves the record to Deleted. Calling it on a deleted record
// refreshes the timestamp.
func (r *Record) SoftDelete(now time.Time) {
	ts := now.UTC()
	r.Deleted = true
	r.DeletedAt = &ts
}

// Restore moves the record back to Active. Restoring an active record is
// harmless.
func (r *Record) Restore() {
	r.Deleted = false
	r.DeletedAt = nil
}

func (r Record) State() State {
	if r.Deleted {
		return Deleted
	}
	return Active
}

func (r Record) IsDeleted() bool {
	return r.Deleted
}

// Consistent reports whether the flag and timestamp agree.
func (r Record) Consistent() bool {
	return r.Deleted == (r.DeletedAt != nil)
}

// DeletedRecord returns the record state written by a soft delete at now.
func DeletedRecord(now time.Time) Record {
	var r Record
	r.SoftDelete(now)
	return r
}

// ActiveRecord returns the record state written by a restore.
func ActiveRecord() Record {
	return Record{}
}

type Kind string

const (
	KindCustomer Kind = "customer"
	KindSite     Kind = "site"
	KindJob      Kind = "job"
)

var kinds = []Kind{KindCustomer, KindSite, KindJob}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", core.ValidationError(fmt.Sprintf("unknown record type %q", s))
}

func (k Kind) String() string {
	return string(k)
}

// Title is the display form used in messages, e.g. "Customer".
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
