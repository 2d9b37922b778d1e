package rabbitmq_test

import (
	"encoding/json"
	"testing"

	"kayoemoeda/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEncodeDecodeEnvelope(t *testing.T) {
	body, err := rabbitmq.Encode("order.created", map[string]interface{}{
		"orderCode":   "KM-1",
		"grossAmount": 150000,
	})
	require.NoError(t, err)

	env, err := rabbitmq.Decode(body)
	require.NoError(t, err)
	assert.Equal(t, "order.created", env.Event)
	assert.False(t, env.OccurredAt.IsZero())

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "KM-1", data["orderCode"])
	assert.EqualValues(t, 150000, data["grossAmount"])
}

func TestEncodeRejectsUnmarshalablePayload(t *testing.T) {
	_, err := rabbitmq.Encode("order.created", map[string]interface{}{"bad": make(chan int)})
	assert.Error(t, err)
}

func TestLogEvent(t *testing.T) {
	body, err := rabbitmq.Encode("user.password_reset_requested", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	assert.NoError(t, rabbitmq.LogEvent(amqp.Delivery{Body: body}))
	assert.Error(t, rabbitmq.LogEvent(amqp.Delivery{Body: []byte("not json")}))
}

func TestLogEventMasksResetToken(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	body, err := rabbitmq.Encode("user.password_reset_requested", map[string]string{
		"email": "a@b.c",
		"token": "SECRET123",
	})
	require.NoError(t, err)
	require.NoError(t, rabbitmq.LogEvent(amqp.Delivery{Body: body}))

	require.Equal(t, 1, logs.Len())
	line := logs.All()[0].Message
	assert.Contains(t, line, "user.password_reset_requested")
	assert.Contains(t, line, "a@b.c")
	assert.Contains(t, line, "[REDACTED]")
	assert.NotContains(t, line, "SECRET123")
}

func TestRedact(t *testing.T) {
	assert.Equal(t, `{"Password":"[REDACTED]","name":"Sari"}`,
		rabbitmq.Redact(json.RawMessage(`{"name":"Sari","Password":"hunter22"}`)))
	assert.Equal(t, "[unreadable payload]", rabbitmq.Redact(json.RawMessage(`["token"]`)))
}
