package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactCredentialKeys(t *testing.T) {
	out := redact([]interface{}{"user_id", "u1", "password", "hunter2", "Authorization", "Bearer x", "access_token", "t"})

	assert.Equal(t, []interface{}{"user_id", "u1", "password", "[REDACTED]", "Authorization", "[REDACTED]", "access_token", "[REDACTED]"}, out)
}

func TestRedactLeavesInputUntouched(t *testing.T) {
	in := []interface{}{"password", "hunter2"}
	_ = redact(in)
	assert.Equal(t, "hunter2", in[1])
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "houses").Info("created", "house_id", "h1", "secret", "s")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "houses", ctx["component"])
		assert.Equal(t, "h1", ctx["house_id"])
		assert.Equal(t, "[REDACTED]", ctx["secret"])
	}
}
