package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestParseDeadline(t *testing.T) {
	d := ParseDeadline(strp("2026-04-30"))
	require.NotNil(t, d)
	assert.Equal(t, "2026-04-30", time.Time(*d).Format(dateLayout))

	d = ParseDeadline(strp("2026-12-18T03:00:00.000Z"))
	require.NotNil(t, d)
	assert.Equal(t, "2026-12-18", time.Time(*d).Format(dateLayout))

	for _, raw := range []string{"", "  ", "30/04/2026", "1999-12-31", "2101-01-01", "0026-04-30", "2026-02-30"} {
		assert.Nil(t, ParseDeadline(strp(raw)), raw)
	}
	assert.Nil(t, ParseDeadline(nil))
}
