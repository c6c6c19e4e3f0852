package telemetry

// collectSocial drains the chat buffer and copies the friends/clan surface.
func (e *Engine) collectSocial(snap *Snapshot) error {
	sec := &snap.Social

	sec.Chat = e.buffers.Chat.Drain()
	sec.ChatCount = len(sec.Chat)

	for _, f := range e.client.Friends() {
		sec.FriendsTotal++
		if f.Online {
			sec.FriendsOnline++
		}
	}
	sec.Clan = e.client.Clan()

	for _, g := range e.client.VisibleWidgetGroups() {
		if g == widgetGroupTrade {
			sec.TradeActive = true
			break
		}
	}
	return nil
}
