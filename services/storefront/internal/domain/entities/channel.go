package entities

// Channel is the marketing channel a session or order is attributed to.
type Channel string

const (
	ChannelOrganic    Channel = "organic"
	ChannelPaidSearch Channel = "paid_search"
	ChannelSocial     Channel = "social"
	ChannelEmail      Channel = "email"
	ChannelReferral   Channel = "referral"
	ChannelDirect     Channel = "direct"
)

// Channels lists every channel in report order.
var Channels = []Channel{
	ChannelOrganic,
	ChannelPaidSearch,
	ChannelSocial,
	ChannelEmail,
	ChannelReferral,
	ChannelDirect,
}

func (c Channel) Valid() bool {
	for _, ch := range Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// ChannelOrDefault falls back to direct for empty or unknown values.
func ChannelOrDefault(value string) Channel {
	if c := Channel(value); c.Valid() {
		return c
	}
	return ChannelDirect
}

type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

func (d DeviceType) Valid() bool {
	switch d {
	case DeviceDesktop, DeviceMobile, DeviceTablet:
		return true
	}
	return false
}

func DeviceOrDefault(value string) DeviceType {
	if d := DeviceType(value); d.Valid() {
		return d
	}
	return DeviceDesktop
}
