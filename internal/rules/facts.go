package rules

import "fmt"

// TargetKind distinguishes fully-tracked characters from generic animals.
//
// Conditions that reference character-only facts (name, spouse, dateable,
// friendship bounds) automatically fail for KindAnimal targets when set.
type TargetKind int

const (
	// KindCharacter is a named character with a relationship record.
	KindCharacter TargetKind = iota + 1
	// KindAnimal is a generic animal target (pets, livestock) without
	// character-level facts.
	KindAnimal
)

// ActorType is the coarse category of a reaction target, derived from
// world facts by the fact provider.
type ActorType string

const (
	ActorVillager   ActorType = "villager"
	ActorPet        ActorType = "pet"
	ActorFarmAnimal ActorType = "farm-animal"
	ActorBaby       ActorType = "baby"
	ActorOther      ActorType = "other"
)

// ParseActorType validates an authored actor type name.
// Unknown names are an error so that malformed rule data fails closed.
func ParseActorType(s string) (ActorType, error) {
	switch ActorType(s) {
	case ActorVillager, ActorPet, ActorFarmAnimal, ActorBaby, ActorOther:
		return ActorType(s), nil
	}
	return "", fmt.Errorf("unknown actor type %q", s)
}

// Initiator carries the initiating actor's facts. They are not matched by
// conditions; they feed dynamic token substitution in emitted text.
type Initiator struct {
	ID            string
	Name          string
	FarmName      string
	FavoriteThing string
	CompanionName string
	PartnerName   string
	IsMale        bool
}

// Facts is a read-only snapshot of the world and target facts needed for
// condition checks. A FactProvider builds one per (initiator, target) pair;
// distance filtering has already happened upstream.
type Facts struct {
	TargetID string
	Kind     TargetKind
	Name     string
	Type     ActorType
	PetType  string

	IsSpouse   bool
	IsDateable bool
	IsBaby     bool

	// IsCompanion marks the initiator's mount/companion. Companions are
	// exempt from the relationship-record requirement on reward grants.
	IsCompanion bool

	// Friendship is the initiator-target relationship score.
	// HasFriendship is false when no relationship record exists.
	Friendship    int
	HasFriendship bool

	Season  string
	Weather string

	Initiator Initiator
}
