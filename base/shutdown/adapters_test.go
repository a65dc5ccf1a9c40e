//go:build unit

package shutdown_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/databendlabs/databend-base/base/shutdown"
	"github.com/databendlabs/databend-base/base/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestHTTPServerGracefulShutdown(t *testing.T) {
	t.Parallel()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	ln := testutil.NextListener(t)
	addr := ln.Addr().String()

	served := make(chan error, 1)

	go func() {
		served <- app.Listener(ln)
	}()

	waitReachable(t, addr)

	resp, err := http.Get(fmt.Sprintf("http://%s/ping", addr))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	svc := shutdown.HTTPServer(app)
	require.NoError(t, svc.Shutdown(context.Background(), shutdown.NewSignal()))

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("fiber listener did not stop")
	}

	_, err = http.Get(fmt.Sprintf("http://%s/ping", addr))
	assert.Error(t, err)
}

func TestGRPCServerGracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := grpc.NewServer()

	ln := testutil.NextListener(t)

	served := make(chan struct{})

	go func() {
		defer close(served)
		_ = srv.Serve(ln)
	}()

	svc := shutdown.GRPCServer(srv)
	require.NoError(t, svc.Shutdown(context.Background(), shutdown.NewSignal()))

	select {
	case <-served:
	case <-time.After(5 * time.Second):
		t.Fatal("grpc server did not stop")
	}
}

func TestGRPCServerForceAbandonsDrain(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})

	blockDesc := grpc.ServiceDesc{
		ServiceName: "shutdowntest.Block",
		HandlerType: (*any)(nil),
		Streams: []grpc.StreamDesc{{
			StreamName:    "Block",
			ServerStreams: true,
			Handler: func(_ any, stream grpc.ServerStream) error {
				close(started)
				// Held open until the hard stop cancels the stream.
				<-stream.Context().Done()
				return stream.Context().Err()
			},
		}},
	}

	srv := grpc.NewServer()
	srv.RegisterService(&blockDesc, struct{}{})

	ln := testutil.NextListener(t)

	go func() { _ = srv.Serve(ln) }()

	conn, err := grpc.NewClient(ln.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	defer conn.Close()

	streamCtx, cancelStream := context.WithCancel(context.Background())
	defer cancelStream()

	_, err = conn.NewStream(streamCtx,
		&grpc.StreamDesc{StreamName: "Block", ServerStreams: true},
		"/shutdowntest.Block/Block")
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("blocking stream never reached the server")
	}

	force := shutdown.NewSignal()
	svc := shutdown.GRPCServer(srv)

	result := make(chan error, 1)

	go func() {
		result <- svc.Shutdown(context.Background(), force)
	}()

	// The drain is held open by the in-flight stream.
	select {
	case <-result:
		t.Fatal("drain finished with an RPC still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	force.Fire()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("forced stop did not complete")
	}
}

func TestRedisClientShutdown(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	svc := shutdown.RedisClient(client)
	require.NoError(t, svc.Shutdown(context.Background(), shutdown.FiredSignal()))

	assert.Error(t, client.Ping(context.Background()).Err())
}

func TestMongoClientShutdown(t *testing.T) {
	t.Parallel()

	// The driver connects lazily, so no server is needed to exercise the
	// disconnect path.
	client, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://127.0.0.1:1/?connectTimeoutMS=100&serverSelectionTimeoutMS=100"))
	require.NoError(t, err)

	svc := shutdown.MongoClient(client)
	assert.NoError(t, svc.Shutdown(context.Background(), nil))
}

func TestFuncIgnoresForceSignal(t *testing.T) {
	t.Parallel()

	invoked := false
	svc := shutdown.Func(func(context.Context) error {
		invoked = true
		return nil
	})

	require.NoError(t, svc.Shutdown(context.Background(), shutdown.NewSignal()))
	assert.True(t, invoked)
}

func waitReachable(t *testing.T, addr string) {
	t.Helper()

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return false
		}

		conn.Close()

		return true
	}, 5*time.Second, 10*time.Millisecond)
}
