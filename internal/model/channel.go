package model

// ChannelInfo holds the channel statistics the ranker needs. Channels are
// looked up by ID and may be absent from the lookup map.
type ChannelInfo struct {
	ChannelID             string `json:"channelId"`
	SubscriberCount       int64  `json:"subscriberCount"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
}
