package reconciler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
	"github.com/jpbowler97/airtable-csv-sync/pkg/reconciler"
	"github.com/jpbowler97/airtable-csv-sync/pkg/records"
)

func contact(updatedAt string) records.Record {
	return records.Record{FirstName: "Ada", LastName: "Lovelace", UpdatedAt: updatedAt}
}

func TestReconcileCreateDirections(t *testing.T) {
	local := records.Set{
		"a@x.com": contact("2024-01-02T00:00:00Z"),
		"b@x.com": contact("2024-01-02T00:00:00Z"),
	}
	remote := records.Set{
		"c@x.com": contact("2024-01-02T00:00:00Z"),
	}

	ops, err := reconciler.Reconcile(local, remote)
	require.NoError(t, err)

	assert.Equal(t, []reconciler.Operation{
		{Kind: reconciler.KindCreate, Target: reconciler.TargetAirtable, Email: "a@x.com"},
		{Kind: reconciler.KindCreate, Target: reconciler.TargetAirtable, Email: "b@x.com"},
		{Kind: reconciler.KindCreate, Target: reconciler.TargetCSV, Email: "c@x.com"},
	}, ops)
}

func TestReconcileLocalOnly(t *testing.T) {
	local := records.Set{"a@x.com": contact("2024-01-02T00:00:00Z")}

	ops, err := reconciler.Reconcile(local, records.Set{})
	require.NoError(t, err)

	require.Len(t, ops, 1)
	assert.Equal(t, reconciler.Operation{
		Kind:   reconciler.KindCreate,
		Target: reconciler.TargetAirtable,
		Email:  "a@x.com",
	}, ops[0])
}

func TestReconcileTimestampComparison(t *testing.T) {
	tests := []struct {
		name       string
		localTime  string
		remoteTime string
		wantKind   reconciler.Kind
		wantTarget reconciler.Target
	}{
		{
			name:       "equal instants need nothing",
			localTime:  "2024-01-01T00:00:00Z",
			remoteTime: "2024-01-01T00:00:00Z",
			wantKind:   reconciler.KindNone,
			wantTarget: reconciler.TargetNone,
		},
		{
			name:       "local newer updates airtable",
			localTime:  "2024-01-02T00:00:00Z",
			remoteTime: "2024-01-01T00:00:00Z",
			wantKind:   reconciler.KindUpdate,
			wantTarget: reconciler.TargetAirtable,
		},
		{
			name:       "remote newer updates csv",
			localTime:  "2024-01-01T00:00:00Z",
			remoteTime: "2024-01-02T00:00:00Z",
			wantKind:   reconciler.KindUpdate,
			wantTarget: reconciler.TargetCSV,
		},
		{
			name:       "sub-second difference is a tie",
			localTime:  "2024-01-01T10:00:00.123456Z",
			remoteTime: "2024-01-01T10:00:00.999999Z",
			wantKind:   reconciler.KindNone,
			wantTarget: reconciler.TargetNone,
		},
		{
			name:       "offset form compares against zulu form",
			localTime:  "2024-01-01T12:00:00+02:00",
			remoteTime: "2024-01-01T10:00:00Z",
			wantKind:   reconciler.KindNone,
			wantTarget: reconciler.TargetNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := records.Set{"a@x.com": contact(tt.localTime)}
			remote := records.Set{"a@x.com": contact(tt.remoteTime)}

			ops, err := reconciler.Reconcile(local, remote)
			require.NoError(t, err)

			require.Len(t, ops, 1)
			assert.Equal(t, tt.wantKind, ops[0].Kind)
			assert.Equal(t, tt.wantTarget, ops[0].Target)
			assert.Equal(t, "a@x.com", ops[0].Email)
		})
	}
}

func TestReconcileOrderingIsDeterministic(t *testing.T) {
	local := records.Set{}
	remote := records.Set{}
	for _, email := range []string{"zed@x.com", "mid@x.com", "abc@x.com"} {
		local[email] = contact("2024-01-01T00:00:00Z")
		remote[email] = contact("2024-01-01T00:00:00Z")
	}

	first, err := reconciler.Reconcile(local, remote)
	require.NoError(t, err)

	emails := make([]string, len(first))
	for i, op := range first {
		emails[i] = op.Email
	}
	assert.Equal(t, []string{"abc@x.com", "mid@x.com", "zed@x.com"}, emails)

	// Same inputs must yield an identical report on every run.
	for i := 0; i < 10; i++ {
		again, err := reconciler.Reconcile(local, remote)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestReconcileMalformedTimestampFailsRun(t *testing.T) {
	local := records.Set{
		"a@x.com": contact("2024-01-01T00:00:00Z"),
		"b@x.com": contact("2024-01-01T00:00:00Z"),
	}
	remote := records.Set{
		"a@x.com": contact("not-a-date"),
		"b@x.com": contact("2024-01-01T00:00:00Z"),
	}

	ops, err := reconciler.Reconcile(local, remote)
	require.Error(t, err)
	assert.Nil(t, ops, "a malformed run must not produce partial output")
	assert.True(t, errors.IsMalformedTimestamp(err))

	var malformed *errors.MalformedTimestampError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "airtable", malformed.Source)
	assert.Equal(t, "a@x.com", malformed.Email)
	assert.Equal(t, "not-a-date", malformed.Value)
}

func TestReconcileMalformedLocalTimestamp(t *testing.T) {
	local := records.Set{"a@x.com": contact("yesterday")}
	remote := records.Set{"a@x.com": contact("2024-01-01T00:00:00Z")}

	_, err := reconciler.Reconcile(local, remote)
	require.Error(t, err)

	var malformed *errors.MalformedTimestampError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "csv", malformed.Source)
}

func TestReconcileEmptySets(t *testing.T) {
	ops, err := reconciler.Reconcile(records.Set{}, records.Set{})
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestRunStatistics(t *testing.T) {
	local := records.Set{
		"create-remote@x.com": contact("2024-01-01T00:00:00Z"),
		"newer-local@x.com":   contact("2024-01-02T00:00:00Z"),
		"tied@x.com":          contact("2024-01-01T00:00:00Z"),
	}
	remote := records.Set{
		"create-local@x.com": contact("2024-01-01T00:00:00Z"),
		"newer-local@x.com":  contact("2024-01-01T00:00:00Z"),
		"tied@x.com":         contact("2024-01-01T00:00:00Z"),
	}

	result, err := reconciler.Run(local, remote)
	require.NoError(t, err)

	stats := result.Metadata.Stats
	assert.Equal(t, 1, stats.CreatesAirtable)
	assert.Equal(t, 1, stats.CreatesCSV)
	assert.Equal(t, 1, stats.UpdatesAirtable)
	assert.Equal(t, 0, stats.UpdatesCSV)
	assert.Equal(t, 1, stats.InSync)
	assert.Equal(t, 4, stats.Total())
	assert.True(t, result.HasChanges())
	assert.Contains(t, result.Summary(), "2 creates")
}

func TestRunNoChanges(t *testing.T) {
	local := records.Set{"a@x.com": contact("2024-01-01T00:00:00Z")}
	remote := records.Set{"a@x.com": contact("2024-01-01T00:00:00Z")}

	result, err := reconciler.Run(local, remote)
	require.NoError(t, err)

	assert.False(t, result.HasChanges())
	assert.Contains(t, result.Summary(), "in agreement")
}
