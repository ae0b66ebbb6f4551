// Package reconciler decides, for every contact known to either side,
// which operation would bring the local CSV file and the remote Airtable
// table into agreement. It only classifies; applying changes is out of
// scope for the whole tool.
package reconciler

import (
	"github.com/agentstation/utc"

	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
	"github.com/jpbowler97/airtable-csv-sync/pkg/records"
	"github.com/jpbowler97/airtable-csv-sync/pkg/timestamp"
)

// Kind is the class of sync operation required for one email.
type Kind string

const (
	// KindCreate indicates the record is missing from the target side.
	KindCreate Kind = "CREATE"
	// KindUpdate indicates the target side holds an older record.
	KindUpdate Kind = "UPDATE"
	// KindNone indicates both sides already agree.
	KindNone Kind = "NONE"
)

// Target is the side an operation would be applied to, were it executed.
type Target string

const (
	// TargetCSV is the local CSV file.
	TargetCSV Target = "CSV"
	// TargetAirtable is the remote Airtable table.
	TargetAirtable Target = "AIRTABLE"
	// TargetNone is the empty target carried by NONE operations.
	TargetNone Target = ""
)

// Operation is one row of the sync report.
type Operation struct {
	Kind   Kind   `json:"operation" yaml:"operation"`
	Target Target `json:"target" yaml:"target"`
	Email  string `json:"email" yaml:"email"`
}

// Reconcile classifies every email present in either record set.
//
// Output order is ascending lexicographic by email regardless of map
// iteration order, so two runs over the same inputs produce identical
// reports. A record with an unparseable updated_at on a key present in
// both sides fails the whole run; no partial result is returned.
func Reconcile(local, remote records.Set) ([]Operation, error) {
	ops := make([]Operation, 0, len(local)+len(remote))

	for _, email := range records.Union(local, remote) {
		op, err := classify(email, local, remote)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, nil
}

// classify decides the operation for a single email.
func classify(email string, local, remote records.Set) (Operation, error) {
	localRec, inLocal := local[email]
	remoteRec, inRemote := remote[email]

	switch {
	case inLocal && !inRemote:
		return Operation{Kind: KindCreate, Target: TargetAirtable, Email: email}, nil
	case !inLocal && inRemote:
		return Operation{Kind: KindCreate, Target: TargetCSV, Email: email}, nil
	}

	localTime, err := parseUpdatedAt("csv", email, localRec)
	if err != nil {
		return Operation{}, err
	}
	remoteTime, err := parseUpdatedAt("airtable", email, remoteRec)
	if err != nil {
		return Operation{}, err
	}

	switch {
	case localTime.Equal(remoteTime):
		return Operation{Kind: KindNone, Target: TargetNone, Email: email}, nil
	case localTime.After(remoteTime):
		// Local is newer, so the remote side needs the update.
		return Operation{Kind: KindUpdate, Target: TargetAirtable, Email: email}, nil
	default:
		return Operation{Kind: KindUpdate, Target: TargetCSV, Email: email}, nil
	}
}

// parseUpdatedAt normalizes one record's timestamp, attaching the source
// and email to any malformed-timestamp failure.
func parseUpdatedAt(source, email string, rec records.Record) (utc.Time, error) {
	t, err := timestamp.Parse(rec.UpdatedAt)
	if err != nil {
		return utc.Time{}, &errors.MalformedTimestampError{
			Source: source,
			Email:  email,
			Value:  rec.UpdatedAt,
		}
	}
	return t, nil
}
