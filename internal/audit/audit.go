// Package audit records changes to administrative objects.
package audit

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// Action names the kind of change recorded.
type Action string

const (
	// ActionAdd marks a created object.
	ActionAdd Action = "add"
	// ActionUpdate marks a modified object.
	ActionUpdate Action = "update"
	// ActionDelete marks a removed object.
	ActionDelete Action = "delete"
)

// ResourceDirectoryGroup is the resource name of directory groups.
const ResourceDirectoryGroup = "directory_group"

// Entry is one audited change of a single object.
type Entry struct {
	Action     Action
	Resource   string
	ResourceID uint
	UserID     uint64
	Username   string
	Before     any
	After      any
	Notes      map[string]string
}

// Sink persists audit entries.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
}

// Nop is a Sink dropping every entry.
type Nop struct{}

// Record implements Sink.
func (Nop) Record(context.Context, Entry) error { return nil }

// RecordAll passes every entry to sink and returns all failures combined.
// A failing entry does not stop the remaining ones from being recorded.
func RecordAll(ctx context.Context, sink Sink, entries []Entry) error {
	var result *multierror.Error

	for _, entry := range entries {
		if err := sink.Record(ctx, entry); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
