package graph

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/templario-go/apperror"
	"github.com/user/templario-go/users"
)

type fakeUserSource struct {
	mu      sync.Mutex
	calls   [][]int
	fields  [][]string
	byID    map[int]*users.User
	failErr error
}

func (f *fakeUserSource) FindByIDs(ctx context.Context, ids []int, fields []string) (map[int]*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ids)
	f.fields = append(f.fields, fields)
	if f.failErr != nil {
		return nil, f.failErr
	}
	found := make(map[int]*users.User)
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			found[id] = u
		}
	}
	return found, nil
}

func TestUserLoaderBatchesOneQueryPerWave(t *testing.T) {
	source := &fakeUserSource{byID: map[int]*users.User{
		1: {ID: 1, Username: "alpha1"},
		2: {ID: 2, Username: "beta22"},
	}}
	loader := NewUserLoader(source)
	ctx := context.Background()

	thunkA := loader.Load(ctx, 1, []string{"id", "username"})
	thunkB := loader.Load(ctx, 2, []string{"email"})
	thunkC := loader.Load(ctx, 1, []string{"username"})

	gotA, err := thunkA()
	require.NoError(t, err)
	gotB, err := thunkB()
	require.NoError(t, err)
	gotC, err := thunkC()
	require.NoError(t, err)

	assert.Equal(t, source.byID[1], gotA)
	assert.Equal(t, source.byID[2], gotB)
	assert.Same(t, gotA, gotC)

	// One bulk call, duplicate key collapsed, projections unioned.
	require.Len(t, source.calls, 1)
	assert.Equal(t, []int{1, 2}, source.calls[0])
	assert.Equal(t, []string{"id", "username", "email"}, source.fields[0])
}

func TestUserLoaderMissingKeyIsNotFound(t *testing.T) {
	source := &fakeUserSource{byID: map[int]*users.User{1: {ID: 1}}}
	loader := NewUserLoader(source)
	ctx := context.Background()

	thunkHit := loader.Load(ctx, 1, nil)
	thunkMiss := loader.Load(ctx, 99, nil)

	_, err := thunkHit()
	require.NoError(t, err)

	_, err = thunkMiss()
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "User with id 99 not found", err.Error())

	// The miss does not retrigger the batch.
	assert.Len(t, source.calls, 1)
}

func TestUserLoaderNewBatchAfterExecution(t *testing.T) {
	source := &fakeUserSource{byID: map[int]*users.User{1: {ID: 1}, 2: {ID: 2}}}
	loader := NewUserLoader(source)
	ctx := context.Background()

	first := loader.Load(ctx, 1, nil)
	_, err := first()
	require.NoError(t, err)

	second := loader.Load(ctx, 2, nil)
	_, err = second()
	require.NoError(t, err)

	require.Len(t, source.calls, 2)
	assert.Equal(t, []int{1}, source.calls[0])
	assert.Equal(t, []int{2}, source.calls[1])
}

func TestUserLoaderBulkFailureReachesEveryCaller(t *testing.T) {
	source := &fakeUserSource{failErr: apperror.NewDatabaseError("boom", nil)}
	loader := NewUserLoader(source)
	ctx := context.Background()

	thunkA := loader.Load(ctx, 1, nil)
	thunkB := loader.Load(ctx, 2, nil)

	_, errA := thunkA()
	_, errB := thunkB()

	assert.Error(t, errA)
	assert.Error(t, errB)
	assert.Len(t, source.calls, 1)
}
