package telemetry

import "runtime"

// collectSystem records process-level metrics and buffer pressure.
func (e *Engine) collectSystem(snap *Snapshot) error {
	sec := &snap.System

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	sec.HeapAllocBytes = ms.HeapAlloc
	sec.HeapSysBytes = ms.HeapSys
	sec.NumGC = ms.NumGC
	sec.Goroutines = runtime.NumGoroutine()

	sec.BufferedEvents = uint64(e.buffers.Chat.Len() +
		e.buffers.StatChanges.Len() +
		e.buffers.Hitsplats.Len() +
		e.buffers.Animations.Len() +
		e.buffers.Interactions.Len() +
		e.buffers.Projectiles.Len() +
		e.buffers.MenuClicks.Len() +
		e.buffers.KeyPresses.Len() +
		e.buffers.MouseClicks.Len())
	sec.DroppedEvents = e.buffers.TotalDropped()

	sec.UptimeSeconds = int64(snap.Timestamp.Sub(e.startedAt).Seconds())
	return nil
}
