package telemetry

// collectInterface records which UI surfaces are open this tick.
func (e *Engine) collectInterface(snap *Snapshot) error {
	sec := &snap.Interface
	sec.VisibleGroups = e.client.VisibleWidgetGroups()
	for _, g := range sec.VisibleGroups {
		switch g {
		case widgetGroupBank:
			sec.BankOpen = true
		case widgetGroupShop:
			sec.ShopOpen = true
		case widgetGroupDialogue:
			sec.DialogueOpen = true
		case widgetGroupTrade:
			sec.TradeOpen = true
		}
	}
	return nil
}
