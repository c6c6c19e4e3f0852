package telemetry

// collectInput fills the input section from the pointer/camera surface and
// the input event buffers, then derives movement analytics from the player
// phase's position diff.
func (e *Engine) collectInput(snap *Snapshot) error {
	sec := &snap.Input
	sec.Mouse = e.client.Mouse()
	sec.Camera = e.client.Camera()
	sec.MenuEntries = e.client.MenuEntries()

	sec.KeyPresses = e.buffers.KeyPresses.Drain()
	sec.MouseClicks = e.buffers.MouseClicks.Drain()
	sec.MenuClicks = e.buffers.MenuClicks.Drain()
	sec.KeyPressCount = len(sec.KeyPresses)
	sec.MouseClickCount = len(sec.MouseClicks)
	sec.MenuClickCount = len(sec.MenuClicks)

	// Movement analytics ride on the player phase's diff; phase order
	// guarantees it already ran (possibly degraded to zeros).
	mv := snap.Player.Movement
	if mv.Teleport {
		e.teleportCount++
	}
	e.sessionDistance += mv.Distance
	if snap.Player.Present && mv.Distance == 0 && !mv.Teleport {
		e.idleTicks++
	}

	sec.Movement = MovementAnalytics{
		TickDistance:    mv.Distance,
		SessionDistance: e.sessionDistance,
		TeleportCount:   e.teleportCount,
		IdleTicks:       e.idleTicks,
	}
	if elapsed := snap.Timestamp.Sub(e.startedAt).Seconds(); elapsed > 0 {
		sec.Movement.AverageSpeed = e.sessionDistance / elapsed
	}
	return nil
}
