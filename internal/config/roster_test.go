package config

import (
	"os"
	"path/filepath"
	"testing"
)

const heroesYAML = `heroes:
  - name: Fighter
    hit_points: 30
    armor_class: 16
    attack_bonus: 5
    damage_dice: 1d8+3
    abilities:
      - name: Second Wind
        kind: healing
        dice: 1d10+2
  - name: Cleric
    hit_points: 24
    armor_class: 14
    attack_bonus: 3
    damage_dice: 1d6+1
`

const bestiaryYAML = `monsters:
  - name: Goblin
    hit_points: 12
    armor_class: 13
    attack_bonus: 4
    damage_dice: 1d6+2
    abilities:
      - name: Multiattack
        kind: attack
        swings: 2
`

func writeRoster(t *testing.T, heroes, bestiary string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "heroes.yaml"), []byte(heroes), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bestiary.yaml"), []byte(bestiary), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadRoster(t *testing.T) {
	dir := writeRoster(t, heroesYAML, bestiaryYAML)
	r, err := LoadRoster(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Heroes) != 2 || len(r.Monsters) != 1 {
		t.Fatalf("loaded %d heroes and %d monsters", len(r.Heroes), len(r.Monsters))
	}
	if h := r.HeroByName("fighter"); h == nil || h.Name != "Fighter" {
		t.Fatal("case-insensitive hero lookup failed")
	}
	if m := r.MonsterByName("Dragon"); m != nil {
		t.Fatal("unknown monster lookup must return nil")
	}
	if r.Heroes[0].Abilities[0].Kind != "healing" {
		t.Fatalf("unexpected ability kind %q", r.Heroes[0].Abilities[0].Kind)
	}
}

func TestLoadRosterRejectsBadDice(t *testing.T) {
	bad := `heroes:
  - name: Fighter
    hit_points: 30
    armor_class: 16
    attack_bonus: 5
    damage_dice: 2x8
`
	dir := writeRoster(t, bad, bestiaryYAML)
	if _, err := LoadRoster(dir); err == nil {
		t.Fatal("expected invalid damage_dice to fail validation")
	}
}

func TestLoadRosterRejectsDuplicateNames(t *testing.T) {
	dup := `heroes:
  - name: Fighter
    hit_points: 30
    armor_class: 16
    attack_bonus: 5
    damage_dice: 1d8
  - name: fighter
    hit_points: 10
    armor_class: 10
    attack_bonus: 1
    damage_dice: 1d4
`
	dir := writeRoster(t, dup, bestiaryYAML)
	if _, err := LoadRoster(dir); err == nil {
		t.Fatal("expected duplicate hero name to fail validation")
	}
}
