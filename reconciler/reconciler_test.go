package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-client/models"
)

func order(id string, status models.OrderStatus) models.Order {
	return models.Order{ID: id, Status: status}
}

func ids(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestApplyCreatedAppends(t *testing.T) {
	l := New()
	l.ApplyCreated(order("1", models.StatusReceived))
	l.ApplyCreated(order("2", models.StatusReceived))

	assert.Equal(t, []string{"1", "2"}, ids(l.Orders()))
}

func TestApplyCreatedDuplicateOverwritesInPlace(t *testing.T) {
	l := New()
	l.ApplyCreated(order("1", models.StatusReceived))
	l.ApplyCreated(order("2", models.StatusReceived))

	// Duplicate delivery with newer content.
	l.ApplyCreated(order("1", models.StatusProcessing))

	orders := l.Orders()
	assert.Len(t, orders, 2)
	assert.Equal(t, []string{"1", "2"}, ids(orders))
	assert.Equal(t, models.StatusProcessing, orders[0].Status)
}

func TestApplyUpdatedAbsentIDBehavesAsCreated(t *testing.T) {
	l := New()
	l.ApplyUpdated(order("9", models.StatusProcessing))

	orders := l.Orders()
	assert.Len(t, orders, 1)
	assert.Equal(t, "9", orders[0].ID)
}

func TestApplyUpdatedReplacesInPlace(t *testing.T) {
	l := New()
	l.ApplyCreated(order("1", models.StatusReceived))
	l.ApplyCreated(order("2", models.StatusReceived))

	l.ApplyUpdated(order("1", models.StatusProcessing))

	orders := l.Orders()
	assert.Equal(t, []string{"1", "2"}, ids(orders))
	assert.Equal(t, models.StatusProcessing, orders[0].Status)
}

func TestApplyDeleted(t *testing.T) {
	l := New()
	l.ApplyCreated(order("1", models.StatusReceived))
	l.ApplyCreated(order("2", models.StatusReceived))

	l.ApplyDeleted("1")
	assert.Equal(t, []string{"2"}, ids(l.Orders()))

	// Absent id is a no-op.
	l.ApplyDeleted("1")
	assert.Equal(t, []string{"2"}, ids(l.Orders()))
}

func TestSnapshotThenEvents(t *testing.T) {
	l := New()
	l.MergeSnapshot([]models.Order{order("1", models.StatusReceived)})
	l.ApplyCreated(order("2", models.StatusReceived))
	l.ApplyUpdated(order("1", models.StatusProcessing))

	orders := l.Orders()
	assert.Equal(t, []string{"1", "2"}, ids(orders))
	assert.Equal(t, models.StatusProcessing, orders[0].Status)
	assert.Equal(t, models.StatusReceived, orders[1].Status)
}

func TestLateSnapshotDoesNotClobberEvents(t *testing.T) {
	l := New()

	// Events land before the REST fetch resolves.
	l.ApplyCreated(order("1", models.StatusReceived))
	l.ApplyUpdated(order("1", models.StatusProcessing))

	// The stale snapshot still sees "1" as RECEIVED and brings "0".
	l.MergeSnapshot([]models.Order{
		order("0", models.StatusCompleted),
		order("1", models.StatusReceived),
	})

	orders := l.Orders()
	assert.Equal(t, []string{"1", "0"}, ids(orders))
	assert.Equal(t, models.StatusProcessing, orders[0].Status)
}

func TestReconnectReplayCreatesNoDuplicates(t *testing.T) {
	l := New()
	l.MergeSnapshot([]models.Order{order("1", models.StatusReceived)})
	l.ApplyCreated(order("2", models.StatusReceived))

	// After a reconnect the channel may redeliver creations.
	l.ApplyCreated(order("1", models.StatusReceived))
	l.ApplyCreated(order("2", models.StatusReceived))

	assert.Equal(t, []string{"1", "2"}, ids(l.Orders()))
}

func TestOnChangeReceivesSnapshotCopies(t *testing.T) {
	l := New()
	var seen [][]models.Order
	l.SetOnChange(func(orders []models.Order) {
		seen = append(seen, orders)
	})

	l.ApplyCreated(order("1", models.StatusReceived))
	l.ApplyUpdated(order("1", models.StatusProcessing))
	l.ApplyDeleted("1")

	assert.Len(t, seen, 3)
	assert.Equal(t, models.StatusReceived, seen[0][0].Status)
	assert.Equal(t, models.StatusProcessing, seen[1][0].Status)
	assert.Empty(t, seen[2])
}

func TestMergeSnapshotNoChangeNoNotify(t *testing.T) {
	l := New()
	l.ApplyCreated(order("1", models.StatusReceived))

	calls := 0
	l.SetOnChange(func([]models.Order) { calls++ })

	l.MergeSnapshot([]models.Order{order("1", models.StatusReceived)})
	assert.Zero(t, calls)
}

func TestGet(t *testing.T) {
	l := New()
	l.ApplyCreated(order("1", models.StatusProcessing))

	got, ok := l.Get("1")
	assert.True(t, ok)
	assert.Equal(t, models.StatusProcessing, got.Status)

	_, ok = l.Get("2")
	assert.False(t, ok)
}
