package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name        string
		part, whole float64
		want        float64
	}{
		{name: "zero whole", part: 5, whole: 0, want: 0},
		{name: "half", part: 1, whole: 2, want: 50},
		{name: "rounds to two decimals", part: 1, whole: 3, want: 33.33},
		{name: "rounds up", part: 2, whole: 3, want: 66.67},
		{name: "above hundred", part: 3, whole: 2, want: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.part, tt.whole))
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(10, 0))
	assert.Equal(t, 3.33, Ratio(10, 3))
}

func TestChannelOrDefault(t *testing.T) {
	assert.Equal(t, ChannelSocial, ChannelOrDefault("social"))
	assert.Equal(t, ChannelDirect, ChannelOrDefault(""))
	assert.Equal(t, ChannelDirect, ChannelOrDefault("billboard"))
	assert.Len(t, Channels, 6)
}

func TestDeviceOrDefault(t *testing.T) {
	assert.Equal(t, DeviceMobile, DeviceOrDefault("mobile"))
	assert.Equal(t, DeviceDesktop, DeviceOrDefault("watch"))
}

func TestEventTypeValid(t *testing.T) {
	assert.True(t, EventCheckoutAbandon.Valid())
	assert.False(t, EventType("click").Valid())
}

func TestOrderStatusCountsAsRevenue(t *testing.T) {
	assert.True(t, OrderDelivered.CountsAsRevenue())
	assert.True(t, OrderPending.CountsAsRevenue())
	assert.False(t, OrderCancelled.CountsAsRevenue())
	assert.False(t, OrderRefunded.CountsAsRevenue())
}

func TestProductRates(t *testing.T) {
	p := &Product{ViewCount: 200, AddToCartCount: 30, PurchaseCount: 7}
	assert.Equal(t, 3.5, p.ConversionRate())
	assert.Equal(t, 15.0, p.CartRate())

	empty := &Product{}
	assert.Zero(t, empty.ConversionRate())
	assert.Zero(t, empty.CartRate())
}

func TestDateRangeContains(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := DateRange{Start: start, End: start.Add(24 * time.Hour)}

	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(start.Add(-time.Second)))
	assert.False(t, r.Contains(r.End.Add(time.Nanosecond)))
}
