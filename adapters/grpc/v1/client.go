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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	entErrors "github.com/weaviate/weaviate-client-core/entities/errors"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 3
)

// Client sends search requests. It is the only part of the package that
// blocks.
type Client struct {
	client  pb.WeaviateClient
	logger  logrus.FieldLogger
	auth    *authHandler
	metrics *SearchMetrics
	timeout time.Duration
	retries uint64
	backoff func() backoff.BackOff
}

type ClientOption func(*Client)

func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.auth.apiKey = key
	}
}

func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.auth.headers[k] = v
		}
	}
}

func WithMetrics(metrics *SearchMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithTimeout bounds every attempt. Zero disables the bound.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithRetries(retries uint64) ClientOption {
	return func(c *Client) {
		c.retries = retries
	}
}

func withBackOff(fn func() backoff.BackOff) ClientOption {
	return func(c *Client) {
		c.backoff = fn
	}
}

func NewClient(client pb.WeaviateClient, logger logrus.FieldLogger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	c := &Client{
		client:  client,
		logger:  logger,
		auth:    newAuthHandler("", nil),
		timeout: DefaultTimeout,
		retries: DefaultRetries,
	}
	c.backoff = func() backoff.BackOff {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 100 * time.Millisecond
		eb.MaxElapsedTime = 0
		return eb
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search sends one request. Calls failing with Unavailable are retried with
// exponential backoff, all other errors are returned as they are.
func (c *Client) Search(ctx context.Context, req *pb.SearchRequest) (*pb.SearchReply, error) {
	collection := req.GetCollection()
	if c.metrics != nil {
		c.metrics.OnRequest(collection)
	}
	start := time.Now()

	var reply *pb.SearchReply
	attempt := 0
	op := func() error {
		if attempt > 0 && c.metrics != nil {
			c.metrics.OnRetry(collection)
		}
		attempt++

		callCtx := c.auth.outgoingContext(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, c.timeout)
			defer cancel()
		}

		var err error
		reply, err = c.client.Search(callCtx, req)
		if err == nil {
			return nil
		}
		if status.Code(err) != codes.Unavailable {
			return backoff.Permanent(err)
		}
		c.logger.WithField("action", "grpc_search_retry").
			WithField("collection", collection).
			WithField("attempt", attempt).
			WithError(err).
			Warn("server unavailable, retrying")
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), c.retries), ctx)
	err := backoff.Retry(op, policy)
	if c.metrics != nil {
		c.metrics.OnDone(collection, status.Code(err).String(), time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// SearchMany sends the requests concurrently. The first error cancels the
// remaining calls, replies keep the order of the requests.
func (c *Client) SearchMany(ctx context.Context, reqs []*pb.SearchRequest) ([]*pb.SearchReply, error) {
	replies := make([]*pb.SearchReply, len(reqs))
	eg, gctx := entErrors.NewErrorGroupWithContextWrapper(c.logger, ctx)
	for i := range reqs {
		i := i
		eg.Go(func() error {
			reply, err := c.Search(gctx, reqs[i])
			if err != nil {
				return err
			}
			replies[i] = reply
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return replies, nil
}
