package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	var testCases = []struct {
		description string
		id          string
		expect      bool
	}{
		{description: "generated", id: New(), expect: true},
		{description: "empty", id: "", expect: false},
		{description: "object id", id: "525043aa130cd46f0b000001", expect: false},
		{description: "garbage", id: "not-an-id", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Valid(testCase.id), testCase.description)
	}
}
