package syslog

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/thurgood/model"
)

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC)
	var testCases = []struct {
		description string
		facility    string
		severity    string
		expect      string
		expectErr   string
	}{
		{description: "defaults", expect: "<14>Mar  5 07:08:09 logs.example.com:514 build started"},
		{description: "local0 error", facility: "local0", severity: "error", expect: "<131>Mar  5 07:08:09 logs.example.com:514 build started"},
		{description: "case insensitive", facility: "KERN", severity: "Emerg", expect: "<0>Mar  5 07:08:09 logs.example.com:514 build started"},
		{description: "unknown facility", facility: "printer", expectErr: "facility"},
		{description: "unknown severity", severity: "loud", expectErr: "severity"},
	}

	for _, testCase := range testCases {
		msg, err := NewMessage(testCase.facility, testCase.severity, "logs.example.com:514", "build started", now)
		if testCase.expectErr != "" {
			var target *model.ValidationError
			require.ErrorAs(t, err, &target, testCase.description)
			assert.Equal(t, testCase.expectErr, target.Field, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, msg.Format(), testCase.description)
	}
}

func TestNetForwarder_Forward(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	forwarder := NewForwarder("udp", "")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, forwarder.Forward(ctx, conn.LocalAddr().String(), "<14>Mar  5 07:08:09 host hello"))

	buf := make([]byte, 256)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "<14>Mar  5 07:08:09 host hello", string(buf[:n]))

	assert.Error(t, NewForwarder("", "").Forward(ctx, "", "line"))
}
