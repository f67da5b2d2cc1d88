package mq

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestNilMQClose(t *testing.T) {
	var queue *MQ
	assert.NoError(t, queue.Close())
}

func TestHeadersToAttributes(t *testing.T) {
	assert.Nil(t, headersToAttributes(nil))

	attrs := headersToAttributes(amqp.Table{
		"event_id":   "a1",
		"event_type": []byte(ChannelFileRegistered),
		"attempt":    int32(2),
	})
	assert.Equal(t, map[string]string{
		"event_id":   "a1",
		"event_type": ChannelFileRegistered,
		"attempt":    "2",
	}, attrs)
}

func TestPubSubSubscriptionName(t *testing.T) {
	client := &PubSubClient{}
	assert.Equal(t, "catalog.file.registered-sub", client.subscriptionName(ChannelFileRegistered))

	client.subscriptionSuffix = ".archive"
	assert.Equal(t, "catalog.metric.recorded.archive", client.subscriptionName(ChannelMetricRecorded))
}
