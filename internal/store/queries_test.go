package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_buildTicketSearchQuery_SQLContainsParts(t *testing.T) {
	query, args, err := buildTicketSearchQuery(42, "ada", 20)
	require.NoError(t, err)
	require.NotEmpty(t, args)

	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from tickets")
	require.Contains(t, q, "where")
	require.Contains(t, q, "event_id")
	require.Contains(t, q, "like")
	require.Contains(t, q, "limit 20")

	// columns presence (subset / key columns)
	require.Contains(t, q, "code")
	require.Contains(t, q, "attendee_name")
	require.Contains(t, q, "attendee_email")
	require.Contains(t, q, "is_checked_in")
}

func Test_buildTicketSearchQuery_Args(t *testing.T) {
	query, args, err := buildTicketSearchQuery(7, "abc", 5)
	require.NoError(t, err)

	// squirrel's default placeholder format is ?, which is what the sqlite
	// driver expects.
	require.NotContains(t, query, "$1")
	require.Contains(t, query, "?")

	// event id plus one LIKE pattern per searchable column
	require.Len(t, args, 4)
	require.Equal(t, int64(7), args[0])
	for _, arg := range args[1:] {
		require.Equal(t, "%abc%", arg)
	}
}
