package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	var testCases = []struct {
		description string
		config      Config
		expectLevel zapcore.Level
		expectErr   bool
	}{
		{description: "defaults", config: Config{}, expectLevel: zapcore.InfoLevel},
		{description: "debug console", config: Config{Level: "debug", Encoding: "console"}, expectLevel: zapcore.DebugLevel},
		{description: "bad level", config: Config{Level: "loud"}, expectErr: true},
		{description: "bad encoding", config: Config{Encoding: "xml"}, expectErr: true},
	}
	for _, testCase := range testCases {
		logger, err := New(testCase.config)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.True(t, logger.Core().Enabled(testCase.expectLevel), testCase.description)
		assert.False(t, logger.Core().Enabled(testCase.expectLevel-1), testCase.description)
	}
	assert.NotNil(t, OrNop(nil))
}
