package domain

import (
	"encoding/json"
	"reflect"
	"time"
)

// Version statuses. A version starts as draft and only ever moves to
// published; there is no rejected or archived state.
const (
	VersionStatusDraft     = "draft"
	VersionStatusPublished = "published"
)

// SettingsVersion is one immutable snapshot in the configuration history.
// Only Status and PublishedAt change after creation, and only through the
// publish operation. Rollbacks never rewrite history; they append a new
// version carrying a past version's content.
type SettingsVersion struct {
	ID          string                `json:"id" bson:"id"`
	Author      string                `json:"author" bson:"author"`
	Status      string                `json:"status" bson:"status"`
	Message     string                `json:"message,omitempty" bson:"message,omitempty"`
	Content     ConfigurationDocument `json:"content" bson:"content"`
	Diffs       []FieldDiff           `json:"diffs" bson:"diffs"`
	CreatedAt   time.Time             `json:"createdAt" bson:"createdAt"`
	PublishedAt *time.Time            `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
}

// FieldDiff records a changed top-level section as one whole-old/whole-new
// pair. Diffs are not deep-recursed.
type FieldDiff struct {
	Key string `json:"key" bson:"key"`
	Old any    `json:"old" bson:"old"`
	New any    `json:"new" bson:"new"`
}

// DiffDocuments compares two configuration documents section by section and
// returns one FieldDiff per changed top-level key. Comparison is structural,
// so serialization key order can never produce a false positive.
func DiffDocuments(old, next ConfigurationDocument) []FieldDiff {
	diffs := []FieldDiff{}

	sections := []struct {
		key      string
		old, new any
	}{
		{"currencies", old.Currencies, next.Currencies},
		{"shipping", old.Shipping, next.Shipping},
		{"commissions", old.Commissions, next.Commissions},
		{"warehouse", old.Warehouse, next.Warehouse},
		{"delivery", old.Delivery, next.Delivery},
		{"ordersInvoices", old.OrdersInvoices, next.OrdersInvoices},
		{"notifications", old.Notifications, next.Notifications},
		{"roles", old.Roles, next.Roles},
		{"users", old.Users, next.Users},
	}

	for _, s := range sections {
		if !reflect.DeepEqual(s.old, s.new) {
			diffs = append(diffs, FieldDiff{Key: s.key, Old: s.old, New: s.new})
		}
	}

	return diffs
}

// Clone returns a deep copy of the document so that stored snapshots cannot
// be mutated through shared maps or slices.
func (d ConfigurationDocument) Clone() ConfigurationDocument {
	raw, err := json.Marshal(d)
	if err != nil {
		return d
	}
	var out ConfigurationDocument
	if err := json.Unmarshal(raw, &out); err != nil {
		return d
	}
	return out
}
