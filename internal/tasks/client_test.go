package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksDatabasePath(t *testing.T) {
	assert.Equal(t, "./wypozyczalnia-tasks.db", TasksDatabasePath("./wypozyczalnia.db"))
	assert.Equal(t, "/data/catalog-tasks", TasksDatabasePath("/data/catalog"))
}

func TestNewClient(t *testing.T) {
	dir := t.TempDir()

	client, err := NewClient(filepath.Join(dir, "catalog.db"), DefaultConfig())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "catalog-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestClient_StopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

func TestClient_StartStop(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx))
}

type echoTask struct {
	Value string `json:"value"`
}

func (echoTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "echo",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestClient_ExecutesTask(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	executed := make(chan string, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task echoTask) error {
		executed <- task.Value
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(echoTask{Value: "hello"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case v := <-executed:
		assert.Equal(t, "hello", v)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestFormatParams(t *testing.T) {
	assert.Equal(t, "[TASK] done", formatParams("[TASK] done", nil))
	assert.Equal(t, "[TASK] done queue=echo id=1", formatParams("[TASK] done", []any{"queue", "echo", "id", 1}))
	assert.Equal(t, "[TASK] done queue=echo odd", formatParams("[TASK] done", []any{"queue", "echo", "odd"}))
}
