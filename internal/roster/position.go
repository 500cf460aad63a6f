package roster

import (
	"fmt"
	"strings"
)

// Position is one of the 13 roster roles a player can fill
type Position string

const (
	QB   Position = "QB"
	RB   Position = "RB"
	WR   Position = "WR"
	TE   Position = "TE"
	OL   Position = "OL"
	K    Position = "K"
	P    Position = "P"
	DL   Position = "DL"
	ROLB Position = "ROLB"
	MLB  Position = "MLB"
	LOLB Position = "LOLB"
	CB   Position = "CB"
	S    Position = "S"
)

// Tag is a capability shared by a group of positions. Rules ask for tags
// rather than matching position names.
type Tag uint8

const (
	TagLine Tag = 1 << iota
	TagLinebacker
	TagSecondary
	TagSkillOffense
	TagKickingSpecialist
	TagPasser
)

var positionTags = map[Position]Tag{
	QB:   TagPasser,
	RB:   TagSkillOffense,
	WR:   TagSkillOffense,
	TE:   TagSkillOffense,
	OL:   TagLine,
	K:    TagKickingSpecialist,
	P:    TagKickingSpecialist,
	DL:   TagLine,
	ROLB: TagLinebacker,
	MLB:  TagLinebacker,
	LOLB: TagLinebacker,
	CB:   TagSecondary,
	S:    TagSecondary,
}

// Positions lists every valid position in roster display order
var Positions = []Position{QB, RB, WR, TE, OL, K, P, DL, ROLB, MLB, LOLB, CB, S}

// ParsePosition validates a raw position string
func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := positionTags[pos]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
	return pos, nil
}

// Has reports whether the position carries any of the given tags
func (p Position) Has(tags Tag) bool {
	return positionTags[p]&tags != 0
}

// Linebacker reports whether p is one of the three linebacker spots
func (p Position) Linebacker() bool {
	return p.Has(TagLinebacker)
}

// Defensive reports whether p lines up on the defensive side
func (p Position) Defensive() bool {
	switch p {
	case DL, ROLB, MLB, LOLB, CB, S:
		return true
	}
	return false
}

func (p Position) String() string {
	return string(p)
}
