package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SonicDMG/dnd-arena/internal/dice"
	"github.com/SonicDMG/dnd-arena/internal/game"

	"gopkg.in/yaml.v3"
)

// Roster holds the hero and monster templates loaded from the roster
// directory. Templates never change after load; battles take fresh copies.
type Roster struct {
	Heroes   []game.CombatantTemplate
	Monsters []game.CombatantTemplate
}

type heroesFile struct {
	Heroes []game.CombatantTemplate `yaml:"heroes"`
}

type bestiaryFile struct {
	Monsters []game.CombatantTemplate `yaml:"monsters"`
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadRoster reads heroes.yaml and bestiary.yaml from dir and validates
// every template.
func LoadRoster(dir string) (*Roster, error) {
	var hf heroesFile
	if err := loadYAML(filepath.Join(dir, "heroes.yaml"), &hf); err != nil {
		return nil, fmt.Errorf("failed to load heroes roster: %w", err)
	}
	var bf bestiaryFile
	if err := loadYAML(filepath.Join(dir, "bestiary.yaml"), &bf); err != nil {
		return nil, fmt.Errorf("failed to load bestiary: %w", err)
	}
	if len(hf.Heroes) == 0 {
		return nil, fmt.Errorf("heroes.yaml in %s: 'heroes' list is empty", dir)
	}
	if len(bf.Monsters) == 0 {
		return nil, fmt.Errorf("bestiary.yaml in %s: 'monsters' list is empty", dir)
	}
	if err := validateTemplates("heroes.yaml", hf.Heroes); err != nil {
		return nil, err
	}
	if err := validateTemplates("bestiary.yaml", bf.Monsters); err != nil {
		return nil, err
	}
	return &Roster{Heroes: hf.Heroes, Monsters: bf.Monsters}, nil
}

// validateTemplates enforces unique names (case-insensitive), positive hit
// points and parseable dice expressions on every template and ability.
func validateTemplates(file string, templates []game.CombatantTemplate) error {
	nameSet := make(map[string]struct{}, len(templates))
	for _, tpl := range templates {
		if strings.TrimSpace(tpl.Name) == "" {
			return fmt.Errorf("%s: template missing 'name'", file)
		}
		ln := strings.ToLower(strings.TrimSpace(tpl.Name))
		if _, exists := nameSet[ln]; exists {
			return fmt.Errorf("%s: duplicate template name '%s'", file, tpl.Name)
		}
		nameSet[ln] = struct{}{}
		if tpl.HitPoints <= 0 {
			return fmt.Errorf("%s: template '%s' needs hit_points > 0", file, tpl.Name)
		}
		if !dice.Valid(tpl.DamageDice) {
			return fmt.Errorf("%s: template '%s' has invalid damage_dice '%s'", file, tpl.Name, tpl.DamageDice)
		}
		for _, ab := range tpl.Abilities {
			if strings.TrimSpace(ab.Name) == "" {
				return fmt.Errorf("%s: template '%s' has an ability without a name", file, tpl.Name)
			}
			switch ab.Kind {
			case game.AbilityAttack:
				if ab.Dice != "" && !dice.Valid(ab.Dice) {
					return fmt.Errorf("%s: ability '%s' of '%s' has invalid dice '%s'", file, ab.Name, tpl.Name, ab.Dice)
				}
			case game.AbilityHealing:
				if !dice.Valid(ab.Dice) {
					return fmt.Errorf("%s: healing ability '%s' of '%s' needs valid dice", file, ab.Name, tpl.Name)
				}
				if ab.Swings > 1 || ab.Automatic {
					return fmt.Errorf("%s: healing ability '%s' of '%s' cannot swing or be automatic", file, ab.Name, tpl.Name)
				}
			default:
				return fmt.Errorf("%s: ability '%s' of '%s' has unknown kind '%s'", file, ab.Name, tpl.Name, ab.Kind)
			}
		}
	}
	return nil
}

// HeroByName returns the hero template with the given name
// (case-insensitive), or nil.
func (r *Roster) HeroByName(name string) *game.CombatantTemplate {
	return templateByName(r.Heroes, name)
}

// MonsterByName returns the monster template with the given name
// (case-insensitive), or nil.
func (r *Roster) MonsterByName(name string) *game.CombatantTemplate {
	return templateByName(r.Monsters, name)
}

func templateByName(templates []game.CombatantTemplate, name string) *game.CombatantTemplate {
	ln := strings.ToLower(strings.TrimSpace(name))
	for i := range templates {
		if strings.ToLower(templates[i].Name) == ln {
			return &templates[i]
		}
	}
	return nil
}
