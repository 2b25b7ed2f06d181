package pubsub

import (
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// logOnly encodes events like the real client but only logs them. It is used
// when no Google Cloud project is configured.
type logOnly struct{}

// NewLogOnly returns a PubSubClient that publishes nothing.
func NewLogOnly() PubSubClient {
	return logOnly{}
}

func (logOnly) SendMessage(topic EventType, data any) error {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	log.Debug("Pub/Sub disabled, dropping message", "topic", topic, "bytes", len(payload), "data", data)
	return nil
}

func (logOnly) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (logOnly) Close() {}
