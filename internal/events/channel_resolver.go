package events

import "fmt"

// ChannelPattern matches every change channel; the websocket bridge
// PSubscribes to it.
const ChannelPattern = "changes:*"

func TableChannel(table string) string {
	return fmt.Sprintf("changes:%s", table)
}

func CreatorChannel(creatorID string) string {
	return fmt.Sprintf("changes:%s:creator:%s", TableMemoryForms, creatorID)
}

func FormChannel(table, formID string) string {
	return fmt.Sprintf("changes:%s:form:%s", table, formID)
}

func WalletChannel(walletAddress string) string {
	return fmt.Sprintf("changes:wallet:%s", walletAddress)
}

// ChannelResolver determines which channels a change event fans out to.
type ChannelResolver struct{}

func NewChannelResolver() *ChannelResolver {
	return &ChannelResolver{}
}

func (r *ChannelResolver) ResolveChannels(e ChangeEvent) []string {
	channels := []string{TableChannel(e.Table)}

	switch e.Table {
	case TableMemoryForms:
		if e.CreatorID != "" {
			channels = append(channels, CreatorChannel(e.CreatorID))
		}
	case TablePhotos, TableFormOwners:
		if e.FormID != "" {
			channels = append(channels, FormChannel(e.Table, e.FormID))
		}
	}

	return channels
}
