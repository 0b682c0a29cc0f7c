package walker

// stepFreeTurn either moves one cell forward or pivots onto a free
// orthogonal neighbour. The cell behind the agent is never considered.
func (w *Walker) stepFreeTurn() Result {
	shouldTurn := w.roll(w.cfg.TurnFrequency)
	turned, moved := false, false

	if shouldTurn {
		turned = w.tryTurn()
	}
	if !turned {
		moved = w.tryMove()
		if !moved && !shouldTurn {
			turned = w.tryTurn()
		}
		if !turned && !moved {
			return w.relocate()
		}
	}

	w.placePipe()
	if turned {
		return Result{Outcome: OutcomeTurned, Pose: w.pose}
	}
	return Result{Outcome: OutcomeMoved, Pose: w.pose}
}

// tryTurn tests the four turn candidates in random order and takes the first
// open one, spawning a joint at the new pose.
func (w *Walker) tryTurn() bool {
	candidates := w.pose.Orientation.TurnCandidates()
	for len(candidates) > 0 {
		i := w.rng.IntN(len(candidates))
		dir := candidates[i]
		dest := w.pose.Position.Add(dir.Vec3())
		if w.isOpen(dest) {
			w.pose = Pose{Position: dest, Orientation: w.pose.Orientation.Pivot(dir)}
			w.spawner.SpawnJoint(w.pose)
			return true
		}
		candidates = append(candidates[:i], candidates[i+1:]...)
	}
	return false
}

func (w *Walker) tryMove() bool {
	dest := w.pose.Position.Add(w.pose.Orientation.Forward.Vec3())
	if !w.isOpen(dest) {
		return false
	}
	w.pose.Position = dest
	return true
}
