package mongo

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// resetSharedClientsForTest clears shared clients between tests.
func resetSharedClientsForTest() {
	sharedClientsMu.Lock()
	sharedClients = map[string]*sharedClient{}
	sharedClientsMu.Unlock()
}

func stubDials(t *testing.T, connectCount, disconnectCount *int32) {
	t.Helper()

	oldConnect := connectMongo
	oldPing := pingMongo
	oldDisconnect := disconnectMongo

	connectMongo = func(ctx context.Context, clientOpts *options.ClientOptions) (*mongo.Client, error) {
		atomic.AddInt32(connectCount, 1)
		cli, err := mongo.NewClient(options.Client().ApplyURI("mongodb://example.com"))
		if err != nil {
			return nil, errors.Wrap(err, "new client")
		}
		return cli, nil
	}
	pingMongo = func(ctx context.Context, cli *mongo.Client) error {
		return nil
	}
	disconnectMongo = func(ctx context.Context, cli *mongo.Client) error {
		atomic.AddInt32(disconnectCount, 1)
		return nil
	}

	t.Cleanup(func() {
		connectMongo = oldConnect
		pingMongo = oldPing
		disconnectMongo = oldDisconnect
		resetSharedClientsForTest()
	})
}

// TestNewDBSharesClient verifies that NewDB reuses the same shared client
// and only disconnects once the last handle closes.
func TestNewDBSharesClient(t *testing.T) {
	resetSharedClientsForTest()

	var connectCount, disconnectCount int32
	stubDials(t, &connectCount, &disconnectCount)

	ctx := context.Background()
	dial := DialInfo{
		Addr:   "localhost:27017",
		DBName: "video-club",
		User:   "user",
		Pwd:    "pwd",
	}

	db1, err := NewDB(ctx, dial)
	require.NoError(t, err)
	db2, err := NewDB(ctx, dial)
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(&connectCount))

	d1 := db1.(*db)
	d2 := db2.(*db)
	require.Same(t, d1.shared, d2.shared)

	require.NoError(t, db1.Close(ctx))
	require.Equal(t, int32(0), atomic.LoadInt32(&disconnectCount))

	require.NoError(t, db2.Close(ctx))
	require.Equal(t, int32(1), atomic.LoadInt32(&disconnectCount))
}

// TestNewDBConnectError verifies that a failed dial is not cached.
func TestNewDBConnectError(t *testing.T) {
	resetSharedClientsForTest()

	oldConnect := connectMongo
	connectMongo = func(ctx context.Context, clientOpts *options.ClientOptions) (*mongo.Client, error) {
		return nil, errors.New("boom")
	}
	t.Cleanup(func() {
		connectMongo = oldConnect
		resetSharedClientsForTest()
	})

	_, err := NewDB(context.Background(), DialInfo{Addr: "localhost:27017", DBName: "video-club"})
	require.Error(t, err)

	sharedClientsMu.Lock()
	require.Empty(t, sharedClients)
	sharedClientsMu.Unlock()
}

func TestBuildMongoURI(t *testing.T) {
	t.Parallel()

	uri := buildMongoURI(DialInfo{
		Addr:   "localhost:27017",
		DBName: "video-club",
		User:   "u",
		Pwd:    "p",
		AuthDB: "admin",
	})
	require.Equal(t, "mongodb://u:p@localhost:27017/video-club?authSource=admin", uri)

	uri = buildMongoURI(DialInfo{Addr: "localhost:27017", DBName: "video-club"})
	require.Equal(t, "mongodb://localhost:27017/video-club", uri)
}
