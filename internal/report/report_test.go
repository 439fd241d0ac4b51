package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"click-tracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	clicks   []model.ClickRecord
	err      error
	from, to time.Time
	limit    int
}

func (f *fakeStore) ListRange(_ context.Context, from, to time.Time, limit int) ([]model.ClickRecord, error) {
	f.from, f.to, f.limit = from, to, limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.clicks) > limit {
		return f.clicks[:limit], nil
	}
	return f.clicks, nil
}

func TestParseRange_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	r, err := ParseRange("", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-14", r.FromLabel())
	assert.Equal(t, "2024-03-15", r.ToLabel())
}

func TestParseRange_Explicit(t *testing.T) {
	r, err := ParseRange("2024-01-01", "2024-01-31", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Start())
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), r.End())
}

func TestParseRange_Invalid(t *testing.T) {
	_, err := ParseRange("01/01/2024", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseRange("", "2024-13-01", time.Now())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBuild_Aggregates(t *testing.T) {
	var clicks []model.ClickRecord
	add := func(client, channel string, n int) {
		for i := 0; i < n; i++ {
			clicks = append(clicks, model.ClickRecord{Client: client, Channel: channel})
		}
	}
	add("superboats", "tiktok", 5)
	add("luxurycars", "instagram", 3)
	add("grandhotel", "email", 3)
	for i := 0; i < 12; i++ {
		add(fmt.Sprintf("client-%02d", i), fmt.Sprintf("channel-%02d", i), 1)
	}

	store := &fakeStore{clicks: clicks}
	r, _ := ParseRange("2024-01-01", "2024-01-31", time.Now())

	rep, err := NewService(store).Build(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, PageLimit, store.limit)
	assert.Equal(t, r.End(), store.to)
	assert.Equal(t, len(clicks), rep.TotalClicks)

	require.Len(t, rep.TopClients, TopN)
	assert.Equal(t, Count{Key: "superboats", Count: 5}, rep.TopClients[0])
	assert.Equal(t, Count{Key: "grandhotel", Count: 3}, rep.TopClients[1])
	assert.Equal(t, Count{Key: "luxurycars", Count: 3}, rep.TopClients[2])
	assert.Equal(t, "client-00", rep.TopClients[3].Key)

	require.Len(t, rep.TopChannels, TopN)
	assert.Equal(t, "tiktok", rep.TopChannels[0].Key)

	sum := 0
	for _, c := range rep.TopClients {
		sum += c.Count
	}
	assert.LessOrEqual(t, sum, rep.TotalClicks)
}

func TestBuild_OnlyFetchedPageIsAggregated(t *testing.T) {
	clicks := make([]model.ClickRecord, 150)
	for i := range clicks {
		clicks[i] = model.ClickRecord{Client: "a", Channel: "x"}
	}
	rep, err := NewService(&fakeStore{clicks: clicks}).Build(context.Background(), Range{})
	require.NoError(t, err)

	assert.Equal(t, PageLimit, rep.TotalClicks)
	assert.Equal(t, []Count{{Key: "a", Count: PageLimit}}, rep.TopClients)
}

func TestBuild_Empty(t *testing.T) {
	rep, err := NewService(&fakeStore{}).Build(context.Background(), Range{})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.TotalClicks)
	assert.Empty(t, rep.TopClients)
	assert.NotNil(t, rep.Clicks)
}

func TestBuild_StoreError(t *testing.T) {
	_, err := NewService(&fakeStore{err: errors.New("down")}).Build(context.Background(), Range{})
	assert.Error(t, err)
}
