package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StreamEvent is one persisted event. Mirrors ws.StreamEvent.
type StreamEvent struct {
	Channel   string
	Sequence  int64
	Event     map[string]interface{}
	Timestamp time.Time
}

// Streams persists channel events to Redis Streams so dashboards can replay
// what they missed while disconnected.
type Streams struct {
	rdb *redis.Client
	log *zap.Logger
	ctx context.Context
}

func NewStreams(rdb *redis.Client, log *zap.Logger) *Streams {
	return &Streams{
		rdb: rdb,
		log: log,
		ctx: context.Background(),
	}
}

// PublishEvent appends an event to the channel's stream and returns its
// sequence number.
func (s *Streams) PublishEvent(channel string, event map[string]interface{}) (int64, error) {
	seq, err := s.rdb.Incr(s.ctx, "seq:"+channel).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	}

	eventWithSeq := make(map[string]interface{}, len(event)+3)
	for k, v := range event {
		eventWithSeq[k] = v
	}
	eventWithSeq["seq"] = seq
	eventWithSeq["channel"] = channel
	eventWithSeq["timestamp"] = time.Now().Format(time.RFC3339)

	data, err := json.Marshal(eventWithSeq)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	// Cap the stream so replay history stays bounded.
	args := redis.XAddArgs{
		Stream: "stream:" + channel,
		MaxLen: 1000,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{"data": string(data)},
	}
	id, err := s.rdb.XAdd(s.ctx, &args).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to add to stream: %w", err)
	}

	s.log.Debug("Published event to stream",
		zap.String("channel", channel),
		zap.Int64("sequence", seq),
		zap.String("stream_id", id),
	)
	return seq, nil
}

// GetLastSequence returns the last sequence a connection acknowledged, zero
// when it never has.
func (s *Streams) GetLastSequence(channel, connectionID string) (int64, error) {
	seqStr, err := s.rdb.Get(s.ctx, ackKey(channel, connectionID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get last sequence: %w", err)
	}
	seq, err := strconv.ParseInt(seqStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse sequence: %w", err)
	}
	return seq, nil
}

// AcknowledgeSequence records the highest sequence a connection processed.
func (s *Streams) AcknowledgeSequence(channel, connectionID string, sequence int64) error {
	if err := s.rdb.Set(s.ctx, ackKey(channel, connectionID), sequence, 0).Err(); err != nil {
		return fmt.Errorf("failed to acknowledge sequence: %w", err)
	}
	return nil
}

// ReplayEvents returns up to limit events on the channel with a sequence
// greater than sinceSeq.
func (s *Streams) ReplayEvents(channel string, sinceSeq int64, limit int64) ([]StreamEvent, error) {
	msgs, err := s.rdb.XRange(s.ctx, "stream:"+channel, "-", "+").Result()
	if err == redis.Nil {
		return []StreamEvent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	var events []StreamEvent
	for _, msg := range msgs {
		data, ok := msg.Values["data"].(string)
		if !ok {
			continue
		}

		var eventData map[string]interface{}
		if err := json.Unmarshal([]byte(data), &eventData); err != nil {
			s.log.Warn("Failed to unmarshal event", zap.Error(err))
			continue
		}

		seq, _ := eventData["seq"].(float64)
		if int64(seq) <= sinceSeq {
			continue
		}

		channelName, _ := eventData["channel"].(string)
		timestamp, _ := time.Parse(time.RFC3339, stringValue(eventData["timestamp"]))
		if timestamp.IsZero() {
			timestamp = time.Now()
		}

		event := make(map[string]interface{})
		for k, v := range eventData {
			if k != "seq" && k != "channel" && k != "timestamp" {
				event[k] = v
			}
		}

		events = append(events, StreamEvent{
			Channel:   channelName,
			Sequence:  int64(seq),
			Event:     event,
			Timestamp: timestamp,
		})
		if int64(len(events)) >= limit {
			break
		}
	}
	return events, nil
}

func ackKey(channel, connectionID string) string {
	return strings.Join([]string{"ack", channel, connectionID}, ":")
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}
