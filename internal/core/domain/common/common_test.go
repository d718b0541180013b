package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		id       string
		raw      string
		expected Email
	}{
		{id: "lowercase", raw: "test@test.test", expected: Email("test@test.test")},
		{id: "uppercase", raw: "TEST@Test.TEST", expected: Email("test@test.test")},
		{id: "spaces", raw: "  test@test.test ", expected: Email("test@test.test")},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			require.Equal(t, testcase.expected, NewEmail(testcase.raw))
		})
	}
}

func TestOptionalString(t *testing.T) {
	present := NewOptional("value", true)
	require.Equal(t, "[value]", present.String())

	absent := NewOptional("value", false)
	require.Equal(t, "[-]", absent.String())
}
