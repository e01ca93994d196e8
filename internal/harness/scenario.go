package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mvarley/riposte/internal/engine"
	"github.com/mvarley/riposte/internal/l10n"
	"github.com/mvarley/riposte/internal/rules"
	"github.com/mvarley/riposte/internal/rulespec"
)

// Scenario is one scripted signal replay.
type Scenario struct {
	// Name uniquely identifies the scenario; golden files are keyed on it.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description,omitempty"`

	// Pack is the inline rule pack. It goes through the same schema
	// validation and compilation as a pack loaded from disk.
	Pack yaml.Node `yaml:"pack"`

	// Strings is the inline localization table, text key to raw value.
	// StringsFile alternatively names a multi-locale table file relative
	// to the scenario; Locale picks the locale to resolve against.
	Strings     map[string]string `yaml:"strings,omitempty"`
	StringsFile string            `yaml:"stringsFile,omitempty"`
	Locale      string            `yaml:"locale,omitempty"`

	// Tuning overrides engine defaults. Jitter is always forced to zero.
	Tuning Tuning `yaml:"tuning,omitempty"`

	// Initiator describes the acting player.
	Initiator InitiatorSpec `yaml:"initiator"`

	// Targets maps target id to its fact sheet.
	Targets map[string]TargetSpec `yaml:"targets"`

	// Relationships maps target id to the initiator's relationship score.
	// Targets absent here have no relationship record.
	Relationships map[string]int `yaml:"relationships,omitempty"`

	// RunTokens seeds the fixed token generator.
	RunTokens []string `yaml:"runTokens,omitempty"`

	// Steps is the scripted signal sequence.
	Steps []Step `yaml:"steps"`

	// dir is the scenario file's directory, for resolving StringsFile.
	dir string
}

// Tuning is the subset of engine configuration a scenario may override.
// Zero-valued fields keep the default.
type Tuning struct {
	ComboTimeout   time.Duration `yaml:"comboTimeout,omitempty"`
	ComboThreshold int           `yaml:"comboThreshold,omitempty"`
	BaseDelay      time.Duration `yaml:"baseDelay,omitempty"`
	EmoteTextPause time.Duration `yaml:"emoteTextPause,omitempty"`
	FragmentPause  time.Duration `yaml:"fragmentPause,omitempty"`
	RewardAmount   int           `yaml:"rewardAmount,omitempty"`
}

// InitiatorSpec describes the acting player for fact snapshots.
type InitiatorSpec struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	FarmName      string `yaml:"farmName,omitempty"`
	FavoriteThing string `yaml:"favoriteThing,omitempty"`
	CompanionName string `yaml:"companionName,omitempty"`
	PartnerName   string `yaml:"partnerName,omitempty"`
	IsMale        bool   `yaml:"isMale,omitempty"`
}

// TargetSpec is one target's fact sheet.
type TargetSpec struct {
	// Kind is "character" or "animal".
	Kind string `yaml:"kind"`

	// ActorType is the derived category name (villager, pet, ...).
	ActorType string `yaml:"actorType"`

	PetType     string `yaml:"petType,omitempty"`
	IsSpouse    bool   `yaml:"isSpouse,omitempty"`
	IsDateable  bool   `yaml:"isDateable,omitempty"`
	IsBaby      bool   `yaml:"isBaby,omitempty"`
	IsCompanion bool   `yaml:"isCompanion,omitempty"`
	Friendship  *int   `yaml:"friendship,omitempty"`
	Season      string `yaml:"season,omitempty"`
	Weather     string `yaml:"weather,omitempty"`
}

// Step is one scripted event: a signal dispatch, a clock advance, a day
// boundary, or any combination. Order: day boundary, then advance, then
// signal.
type Step struct {
	// Signal is the emote signal id to dispatch; empty means no dispatch.
	Signal string `yaml:"signal,omitempty"`

	// Targets lists the target ids receiving the signal.
	Targets []string `yaml:"targets,omitempty"`

	// Advance moves the clock forward before dispatching (combo decay).
	Advance time.Duration `yaml:"advance,omitempty"`

	// StartDay begins a new in-game day before dispatching.
	StartDay int `yaml:"startDay,omitempty"`

	// Expect lists the exact sorted event lines the step must produce.
	// Omit to skip checking (golden comparison still covers the trace).
	Expect []string `yaml:"expect,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.check(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return &s, nil
}

// localizer builds the text resolver for the run: a locale table file
// when named, the inline strings map otherwise.
func (s *Scenario) localizer() (engine.Localizer, error) {
	if s.StringsFile == "" {
		return stringsLocalizer(s.Strings), nil
	}
	locale := s.Locale
	if locale == "" {
		locale = "en"
	}
	table, err := l10n.Load(filepath.Join(s.dir, s.StringsFile), "en")
	if err != nil {
		return nil, fmt.Errorf("load strings file: %w", err)
	}
	return table.ForLocale(locale), nil
}

func (s *Scenario) check() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Initiator.ID == "" {
		return fmt.Errorf("initiator.id is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	for i, step := range s.Steps {
		if step.Signal == "" && step.Advance == 0 && step.StartDay == 0 {
			return fmt.Errorf("step %d does nothing", i+1)
		}
		if step.Signal != "" && len(step.Targets) == 0 {
			return fmt.Errorf("step %d dispatches %q to no targets", i+1, step.Signal)
		}
	}
	return nil
}

// compilePack runs the inline pack through the regular loader so
// scenarios get the same schema validation as production packs.
func (s *Scenario) compilePack() (*rulespec.Pack, error) {
	if s.Pack.IsZero() {
		return nil, fmt.Errorf("scenario has no rule pack")
	}
	raw, err := yaml.Marshal(&s.Pack)
	if err != nil {
		return nil, fmt.Errorf("re-encode pack: %w", err)
	}
	pack, verrs := rulespec.Parse(s.Name+".yaml", raw)
	if len(verrs) > 0 {
		return nil, fmt.Errorf("invalid pack: %s", verrs[0].Error())
	}
	return pack, nil
}

// facts builds the snapshot for one target.
func (s *Scenario) facts(targetID string) (rules.Facts, bool) {
	spec, ok := s.Targets[targetID]
	if !ok {
		return rules.Facts{}, false
	}

	kind := rules.KindCharacter
	if spec.Kind == "animal" {
		kind = rules.KindAnimal
	}
	actorType, err := rules.ParseActorType(spec.ActorType)
	if err != nil {
		actorType = rules.ActorOther
	}

	f := rules.Facts{
		TargetID:    targetID,
		Kind:        kind,
		Name:        targetID,
		Type:        actorType,
		PetType:     spec.PetType,
		IsSpouse:    spec.IsSpouse,
		IsDateable:  spec.IsDateable,
		IsBaby:      spec.IsBaby,
		IsCompanion: spec.IsCompanion,
		Season:      spec.Season,
		Weather:     spec.Weather,
		Initiator: rules.Initiator{
			ID:            s.Initiator.ID,
			Name:          s.Initiator.Name,
			FarmName:      s.Initiator.FarmName,
			FavoriteThing: s.Initiator.FavoriteThing,
			CompanionName: s.Initiator.CompanionName,
			PartnerName:   s.Initiator.PartnerName,
			IsMale:        s.Initiator.IsMale,
		},
	}
	if spec.Friendship != nil {
		f.Friendship = *spec.Friendship
		f.HasFriendship = true
	}
	return f, true
}
