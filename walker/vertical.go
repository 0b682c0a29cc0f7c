package walker

// verticalStride is the length of one pipe segment under PolicyVertical.
const verticalStride = 2

// stepVertical advances two cells along the local up axis. A blocked target
// only reorients; a target outside the cube relocates.
func (w *Walker) stepVertical() Result {
	dest := w.pose.Position.Add(w.pose.Orientation.Up.Scale(verticalStride).Vec3())

	if !w.IsWithinBounds(dest) {
		return w.relocate()
	}
	if !w.IsFreeOfPipes(dest) {
		w.reorient()
		return Result{Outcome: OutcomeReoriented, Pose: w.pose}
	}

	w.pose.Position = dest
	turned := false
	if w.roll(w.cfg.TurnFrequency) {
		turned = w.reorient()
	}
	w.placePipe()

	if turned {
		return Result{Outcome: OutcomeTurned, Pose: w.pose}
	}
	return Result{Outcome: OutcomeMoved, Pose: w.pose}
}

// reorient picks a new orientation uniformly and spawns a joint when it
// differs from the current one.
func (w *Walker) reorient() bool {
	o := w.randomOrientation()
	if o == w.pose.Orientation {
		return false
	}
	w.pose.Orientation = o
	w.spawner.SpawnJoint(w.pose)
	return true
}
