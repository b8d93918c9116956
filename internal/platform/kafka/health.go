// Package kafka holds broker-level helpers shared by the event relay.
package kafka

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Admin wraps kadm for readiness checks and topic setup.
type Admin struct {
	client *kadm.Client
}

// NewAdmin builds an admin client over an existing franz-go client.
// The caller keeps ownership of cl.
func NewAdmin(cl *kgo.Client) *Admin {
	return &Admin{client: kadm.NewClient(cl)}
}

// Check reports whether the cluster answers metadata requests with at least one broker.
func (a *Admin) Check(ctx context.Context) error {
	brokers, err := a.client.ListBrokers(ctx)
	if err != nil {
		return fmt.Errorf("list kafka brokers: %w", err)
	}
	if len(brokers) == 0 {
		return fmt.Errorf("no kafka brokers reachable")
	}
	return nil
}

// EnsureTopic creates topic unless it already exists. A replication factor
// of -1 uses the broker default.
func (a *Admin) EnsureTopic(ctx context.Context, topic string, partitions int32, replicationFactor int16) error {
	details, err := a.client.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list kafka topics: %w", err)
	}
	if details.Has(topic) {
		return nil
	}

	resp, err := a.client.CreateTopic(ctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("create kafka topic %s: %w", topic, err)
	}
	if resp.Err != nil {
		return fmt.Errorf("create kafka topic %s: %w", topic, resp.Err)
	}
	return nil
}
