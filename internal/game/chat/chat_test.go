package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndHistory(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	e := NewEngine(store.New(store.NewMemoryRepo(), nil), simulator.Instant(), mClock, nil)

	v, err := e.Send(ctx, "0xA", "  good luck  ")
	require.NoError(t, err)
	require.Len(t, v.Messages, 1)
	assert.Equal(t, "good luck", v.Messages[0].Text)
	assert.Equal(t, "0xA", v.Messages[0].From)
	assert.NotEmpty(t, v.Messages[0].ID)
	assert.True(t, mClock.Now().Equal(v.Messages[0].At))

	v, err = e.History(ctx, "0xA")
	require.NoError(t, err)
	assert.Len(t, v.Messages, 1)

	v, err = e.History(ctx, "0xB")
	require.NoError(t, err)
	assert.Empty(t, v.Messages)
}

func TestRejectsBadMessages(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.New(store.NewMemoryRepo(), nil), simulator.Instant(), nil, nil)

	v, err := e.Send(ctx, "0xA", "   ")
	require.NoError(t, err)
	assert.True(t, v.Log.Rejected())
	assert.Empty(t, v.Messages)

	v, err = e.Send(ctx, "0xA", strings.Repeat("x", MaxLength+1))
	require.NoError(t, err)
	assert.True(t, v.Log.Rejected())
}

func TestKeepsLastFifty(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.New(store.NewMemoryRepo(), nil), simulator.Instant(), nil, nil)

	var v View
	var err error
	for i := 0; i < HistorySize+5; i++ {
		v, err = e.Send(ctx, "0xA", fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}
	require.Len(t, v.Messages, HistorySize)
	assert.Equal(t, "msg 5", v.Messages[0].Text)
	assert.Equal(t, fmt.Sprintf("msg %d", HistorySize+4), v.Messages[HistorySize-1].Text)
}
