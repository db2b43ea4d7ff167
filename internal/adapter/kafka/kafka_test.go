package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 2, 25, 15, 10, 0, 0, time.UTC)
	result := domain.ChallengeResult{
		ChallengeID: "a1b2c3d4",
		Synapse: domain.Synapse{
			TaskType: domain.TaskShortTermForecast,
			Location: "jakarta",
		},
		ChallengeType: domain.ChallengeHistorical,
		Timestamp:     now,
		Tempo:         7942,
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("a1b2c3d4"), msg.Key)
	assert.Contains(t, string(msg.Value), `"challenge_id":"a1b2c3d4"`)
	assert.Contains(t, string(msg.Value), `"location":"jakarta"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "task_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("short_term_forecast"), msg.Headers[0].Value)
	assert.Equal(t, "challenge_type", msg.Headers[1].Key)
	assert.Equal(t, []byte("historical"), msg.Headers[1].Value)
	assert.Equal(t, "completed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}
