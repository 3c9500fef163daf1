//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package v1

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeWeaviateClient struct {
	pb.WeaviateClient

	sync.Mutex
	failures map[string][]error
	calls    map[string]int
	md       metadata.MD
}

func newFakeWeaviateClient() *fakeWeaviateClient {
	return &fakeWeaviateClient{failures: map[string][]error{}, calls: map[string]int{}}
}

func (f *fakeWeaviateClient) Search(ctx context.Context, in *pb.SearchRequest,
	opts ...grpc.CallOption,
) (*pb.SearchReply, error) {
	f.Lock()
	defer f.Unlock()

	f.calls[in.Collection]++
	f.md, _ = metadata.FromOutgoingContext(ctx)
	if errs := f.failures[in.Collection]; len(errs) > 0 {
		f.failures[in.Collection] = errs[1:]
		return nil, errs[0]
	}
	return &pb.SearchReply{Results: []*pb.SearchResult{{
		Properties: &pb.PropertiesResult{TargetCollection: in.Collection},
	}}}, nil
}

func zeroBackOff() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func newTestClient(fake *fakeWeaviateClient, opts ...ClientOption) (*Client, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewClient(fake, logger, append([]ClientOption{withBackOff(zeroBackOff)}, opts...)...), hook
}

func TestClientSearch(t *testing.T) {
	unavailable := status.Error(codes.Unavailable, "connection refused")

	t.Run("auth headers", func(t *testing.T) {
		fake := newFakeWeaviateClient()
		client, _ := newTestClient(fake, WithAPIKey("secret"),
			WithHeaders(map[string]string{"X-OpenAI-Api-Key": "sk-1"}))

		_, err := client.Search(context.Background(), &pb.SearchRequest{Collection: "Article"})
		require.Nil(t, err)

		assert.Equal(t, []string{"Bearer secret"}, fake.md.Get("authorization"))
		assert.Equal(t, []string{"sk-1"}, fake.md.Get("x-openai-api-key"))
	})

	t.Run("retries while unavailable", func(t *testing.T) {
		fake := newFakeWeaviateClient()
		fake.failures["Article"] = []error{unavailable, unavailable}
		client, hook := newTestClient(fake)

		reply, err := client.Search(context.Background(), &pb.SearchRequest{Collection: "Article"})
		require.Nil(t, err)
		require.Len(t, reply.Results, 1)

		assert.Equal(t, 3, fake.calls["Article"])
		require.Len(t, hook.AllEntries(), 2)
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.Equal(t, "grpc_search_retry", hook.LastEntry().Data["action"])
	})

	t.Run("retries without a logger", func(t *testing.T) {
		fake := newFakeWeaviateClient()
		fake.failures["Article"] = []error{unavailable}
		client := NewClient(fake, nil, withBackOff(zeroBackOff))

		reply, err := client.Search(context.Background(), &pb.SearchRequest{Collection: "Article"})
		require.Nil(t, err)
		require.Len(t, reply.Results, 1)
		assert.Equal(t, 2, fake.calls["Article"])
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		fake := newFakeWeaviateClient()
		fake.failures["Article"] = []error{unavailable, unavailable, unavailable}
		client, _ := newTestClient(fake, WithRetries(1))

		_, err := client.Search(context.Background(), &pb.SearchRequest{Collection: "Article"})
		require.NotNil(t, err)
		assert.Equal(t, codes.Unavailable, status.Code(err))
		assert.Equal(t, 2, fake.calls["Article"])
	})

	t.Run("other codes are not retried", func(t *testing.T) {
		fake := newFakeWeaviateClient()
		fake.failures["Article"] = []error{status.Error(codes.InvalidArgument, "no such class")}
		client, _ := newTestClient(fake)

		_, err := client.Search(context.Background(), &pb.SearchRequest{Collection: "Article"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		assert.Equal(t, 1, fake.calls["Article"])
	})

	t.Run("metrics", func(t *testing.T) {
		var requests, retries, done int
		var code string
		metrics := &SearchMetrics{
			OnRequest: func(string) { requests++ },
			OnRetry:   func(string) { retries++ },
			OnDone: func(_, c string, _ time.Duration) {
				done++
				code = c
			},
		}

		fake := newFakeWeaviateClient()
		fake.failures["Article"] = []error{unavailable}
		client, _ := newTestClient(fake, WithMetrics(metrics))

		_, err := client.Search(context.Background(), &pb.SearchRequest{Collection: "Article"})
		require.Nil(t, err)
		assert.Equal(t, 1, requests)
		assert.Equal(t, 1, retries)
		assert.Equal(t, 1, done)
		assert.Equal(t, "OK", code)
	})
}

func TestClientSearchMany(t *testing.T) {
	fake := newFakeWeaviateClient()
	fake.failures["B"] = []error{status.Error(codes.Unavailable, "try again")}
	client, _ := newTestClient(fake)

	replies, err := client.SearchMany(context.Background(), []*pb.SearchRequest{
		{Collection: "A"}, {Collection: "B"}, {Collection: "C"},
	})
	require.Nil(t, err)
	require.Len(t, replies, 3)
	for i, collection := range []string{"A", "B", "C"} {
		assert.Equal(t, collection, replies[i].Results[0].Properties.TargetCollection)
	}

	t.Run("first error wins", func(t *testing.T) {
		fake := newFakeWeaviateClient()
		fake.failures["B"] = []error{status.Error(codes.NotFound, "no such class")}
		client, _ := newTestClient(fake)

		_, err := client.SearchMany(context.Background(), []*pb.SearchRequest{{Collection: "A"}, {Collection: "B"}})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestNewSearchMetrics(t *testing.T) {
	assert.Nil(t, NewSearchMetrics(nil))

	reg := prometheus.NewPedanticRegistry()
	metrics := NewSearchMetrics(reg)
	require.NotNil(t, metrics)

	metrics.OnRequest("Article")
	metrics.OnRetry("Article")
	metrics.OnDone("Article", "OK", time.Millisecond)

	families, err := reg.Gather()
	require.Nil(t, err)
	names := make([]string, len(families))
	for i, family := range families {
		names[i] = family.GetName()
	}
	assert.ElementsMatch(t, []string{
		"weaviate_client_search_requests_total",
		"weaviate_client_search_retries_total",
		"weaviate_client_search_duration_seconds",
	}, names)
}
