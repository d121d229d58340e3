package game

// Interaction is what happens when a mover of one class steps into a cell
// held by an occupant of another class.
type Interaction uint8

const (
	InteractBlock        Interaction = iota // Mover stays put
	InteractPush                            // Occupant is asked to move the same way first
	InteractKillMover                       // Mover walked into something lethal
	InteractKillOccupant                    // Mover is lethal to the occupant and bounces
	InteractBounce                          // Mover reverses its heading and stays put
)

var interactionNames = [...]string{"block", "push", "kill-mover", "kill-occupant", "bounce"}

func (i Interaction) String() string {
	if int(i) < len(interactionNames) {
		return interactionNames[i]
	}
	return "unknown"
}

// interactions is indexed [mover][occupant]. Barriers never move and hostiles
// never yield, so their occupant columns are never Push.
var interactions = [4][4]Interaction{
	ClassAgent: {
		ClassAgent:   InteractBlock,
		ClassBlock:   InteractPush,
		ClassBarrier: InteractBlock,
		ClassHostile: InteractKillMover,
	},
	ClassBlock: {
		ClassAgent:   InteractPush,
		ClassBlock:   InteractPush,
		ClassBarrier: InteractBlock,
		ClassHostile: InteractBlock,
	},
	ClassBarrier: {
		ClassAgent:   InteractBlock,
		ClassBlock:   InteractBlock,
		ClassBarrier: InteractBlock,
		ClassHostile: InteractBlock,
	},
	ClassHostile: {
		ClassAgent:   InteractKillOccupant,
		ClassBlock:   InteractBounce,
		ClassBarrier: InteractBounce,
		ClassHostile: InteractBounce,
	},
}

// Interact looks up the rule for a mover entering an occupied cell.
func Interact(mover, occupant Kind) Interaction {
	return interactions[mover.Class()][occupant.Class()]
}
