package board

// updateToken merges p into the token with the given id. Unknown ids and
// patches for another variant are ignored. Listeners are not notified.
func (e *Engine) updateToken(id string, p Patch) {
	t, ok := e.tokens[id]
	if !ok {
		return
	}
	next, ok := Apply(t, p)
	if !ok {
		return
	}
	e.tokens[id] = next
}

// bringToFront raises the token above everything previously raised or spawned.
// The counter advances even when id is unknown.
func (e *Engine) bringToFront(id string) {
	e.zCounter++
	e.updateToken(id, CommonPatch{ZIndex: ptr(e.zCounter)})
}

// spawnOxygen puts a new supply marker on the oxygen prepare slot.
func (e *Engine) spawnOxygen() {
	e.zCounter++
	id := e.spawnID("oxygen")
	e.tokens[id] = e.newOxygen(id, e.zCounter)
	e.notify()
}

// spawnTile deals the next face of column col onto its deck cell. An unknown
// column or an exhausted queue is a no-op.
func (e *Engine) spawnTile(col int) {
	if col < 0 || col >= len(e.queues) {
		return
	}
	q := e.queues[col]
	if len(q) == 0 {
		return
	}
	face := q[0]
	e.queues[col] = q[1:]

	id := e.spawnID("tile")
	e.tokens[id] = e.newTile(id, col, face)
	e.notify()
}
