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

package main

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"gopkg.in/yaml.v2"

	"github.com/weaviate/weaviate-client-core/adapters/graphql"
	grpcv1 "github.com/weaviate/weaviate-client-core/adapters/grpc/v1"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
	"github.com/weaviate/weaviate-client-core/usecases/config"
)

const (
	FormatGraphQL = "graphql"
	FormatGRPC    = "grpc"
)

// Options represents Command line options
type Options struct {
	ConfigFile    string `long:"config-file" description:"path to a yaml or json client config file"`
	Query         string `long:"query" short:"q" required:"true" description:"path to a yaml query document, - reads stdin"`
	Format        string `long:"format" short:"f" choice:"graphql" choice:"grpc" default:"graphql" description:"wire format to render"`
	ServerVersion string `long:"server-version" description:"render for this server version instead of the configured one"`
	Check         bool   `long:"check" description:"parse the rendered graphql query before printing it"`
	Send          bool   `long:"send" description:"send the grpc request and print the parsed reply"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	bootstrap := logrus.New()
	bootstrap.SetOutput(os.Stderr)
	conf, err := config.Load(opts.ConfigFile, bootstrap)
	if err != nil {
		bootstrap.WithError(err).Fatal("failed to load config")
	}
	logger := conf.NewLogger(os.Stderr).WithField("app", "weaviate-render")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, opts, conf, logger, os.Stdin, os.Stdout); err != nil {
		logger.WithError(err).Error("render failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Options, conf config.Config, logger logrus.FieldLogger,
	stdin io.Reader, stdout io.Writer,
) error {
	if opts.Send && opts.Format != FormatGRPC {
		return errors.New("--send needs --format grpc")
	}
	if opts.ServerVersion != "" {
		conf.ServerVersion = opts.ServerVersion
	}
	caps, err := conf.Capabilities()
	if err != nil {
		return err
	}

	doc, err := readDocument(opts.Query, stdin)
	if err != nil {
		return err
	}
	logger.WithField("collection", doc.Collection).
		WithField("format", opts.Format).
		WithField("server_version", conf.ServerVersion).
		Debug("rendering query document")

	r := renderer{
		caps:       caps,
		serializer: grpcv1.NewSerializer(logger),
		beacons:    conf.BeaconBuilder,
	}

	if opts.Format == FormatGraphQL {
		query, err := r.graphQL(doc)
		if err != nil {
			return err
		}
		if opts.Check {
			if err := graphql.CheckSyntax(query); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(stdout, query)
		return err
	}

	req, err := r.grpc(doc)
	if err != nil {
		return err
	}
	if !opts.Send {
		out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(req)
		if err != nil {
			return errors.Wrap(err, "marshal search request")
		}
		_, err = fmt.Fprintln(stdout, string(out))
		return err
	}

	reply, err := send(ctx, conf, req, logger)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal search result")
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

// readDocument loads a query document and inlines its media file. A
// relative data_file is resolved against the document's directory.
func readDocument(path string, stdin io.Reader) (*queryDocument, error) {
	var (
		raw []byte
		err error
		dir = "."
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
		dir = filepath.Dir(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read query document")
	}

	doc := &queryDocument{}
	if err := yaml.UnmarshalStrict(raw, doc); err != nil {
		return nil, errors.Wrap(err, "parse query document")
	}
	if err := doc.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid query document")
	}

	if media := doc.NearMedia; media != nil && media.DataFile != "" {
		if media.Data != "" {
			return nil, errors.New("invalid query document: near_media takes data or data_file, not both")
		}
		file := media.DataFile
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "read near_media data_file")
		}
		media.Data = base64.StdEncoding.EncodeToString(content)
	}
	return doc, nil
}

func send(ctx context.Context, conf config.Config, req *pb.SearchRequest,
	logger logrus.FieldLogger,
) (*searchparams.Result, error) {
	creds := insecure.NewCredentials()
	if conf.GRPC.Secure {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	conn, err := grpc.NewClient(conf.GRPCAddress(), grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", conf.GRPCAddress())
	}
	defer conn.Close()

	clientOpts := []grpcv1.ClientOption{
		grpcv1.WithTimeout(conf.Timeout),
		grpcv1.WithRetries(conf.Retries),
	}
	if len(conf.Headers) > 0 {
		clientOpts = append(clientOpts, grpcv1.WithHeaders(conf.Headers))
	}
	if conf.Authentication.APIKey != "" {
		clientOpts = append(clientOpts, grpcv1.WithAPIKey(conf.Authentication.APIKey))
	}
	var registry *prometheus.Registry
	if conf.Monitoring.Enabled {
		registry = prometheus.NewRegistry()
		clientOpts = append(clientOpts, grpcv1.WithMetrics(grpcv1.NewSearchMetrics(registry)))
	}

	client := grpcv1.NewClient(pb.NewWeaviateClient(conn), logger, clientOpts...)
	reply, err := client.Search(ctx, req)
	logMetrics(registry, logger)
	if err != nil {
		return nil, err
	}
	return grpcv1.ParseReply(reply)
}

func logMetrics(registry *prometheus.Registry, logger logrus.FieldLogger) {
	if registry == nil {
		return
	}
	families, err := registry.Gather()
	if err != nil {
		logger.WithError(err).Warn("gather search metrics")
		return
	}
	for _, family := range families {
		logger.WithField("metric", family.GetName()).
			WithField("series", len(family.GetMetric())).
			Info("search metrics")
	}
}
