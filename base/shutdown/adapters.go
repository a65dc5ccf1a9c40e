package shutdown

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/grpc"
)

// HTTPServer wraps a fiber application as a Stoppable. Graceful shutdown
// waits for in-flight requests; when the force signal fires the wait is
// abandoned and open connections are dropped.
func HTTPServer(app *fiber.App) Stoppable {
	return &httpServer{app: app}
}

type httpServer struct {
	app *fiber.App
}

func (h *httpServer) Shutdown(ctx context.Context, force *Signal) error {
	if force != nil {
		var cancel context.CancelFunc

		ctx, cancel = context.WithCancel(ctx)
		defer cancel()

		go func() {
			select {
			case <-force.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return h.app.ShutdownWithContext(ctx)
}

// GRPCServer wraps a gRPC server as a Stoppable. Graceful shutdown runs
// GracefulStop, draining in-flight RPCs; when the force signal fires (or ctx
// is canceled) the drain is abandoned with a hard Stop.
func GRPCServer(srv *grpc.Server) Stoppable {
	return &grpcServer{srv: srv}
}

type grpcServer struct {
	srv *grpc.Server
}

func (g *grpcServer) Shutdown(ctx context.Context, force *Signal) error {
	done := make(chan struct{})

	go func() {
		g.srv.GracefulStop()
		close(done)
	}()

	var forceCh <-chan struct{}
	if force != nil {
		forceCh = force.Done()
	}

	select {
	case <-done:
		return nil
	case <-forceCh:
	case <-ctx.Done():
	}

	g.srv.Stop()
	// GracefulStop returns promptly once Stop has run.
	<-done

	return ctx.Err()
}

// MongoClient wraps a mongo client as a Stoppable. Disconnect waits for
// in-progress operations; the force signal cancels that wait.
func MongoClient(client *mongo.Client) Stoppable {
	return &mongoClient{client: client}
}

type mongoClient struct {
	client *mongo.Client
}

func (m *mongoClient) Shutdown(ctx context.Context, force *Signal) error {
	if force != nil {
		var cancel context.CancelFunc

		ctx, cancel = context.WithCancel(ctx)
		defer cancel()

		go func() {
			select {
			case <-force.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return m.client.Disconnect(ctx)
}

// RedisClient wraps a redis client as a Stoppable. Close releases the
// connection pool immediately, so the force signal is ignored.
func RedisClient(client redis.UniversalClient) Stoppable {
	return Func(func(_ context.Context) error {
		return client.Close()
	})
}
