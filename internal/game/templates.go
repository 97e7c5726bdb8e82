package game

// AbilityTemplate is an ability definition from the roster files. A random
// subset of a template's abilities is sampled onto each fresh combatant.
type AbilityTemplate struct {
	Name        string      `yaml:"name"`
	Kind        AbilityKind `yaml:"kind"`
	Dice        string      `yaml:"dice"`
	Swings      int         `yaml:"swings"`
	Automatic   bool        `yaml:"automatic"`
	Description string      `yaml:"description"`
}

// CombatantTemplate is a hero or monster definition from the roster files.
// Templates are config-only; battles persist their own fresh copies.
type CombatantTemplate struct {
	Name        string            `yaml:"name"`
	HitPoints   int               `yaml:"hit_points"`
	ArmorClass  int               `yaml:"armor_class"`
	AttackBonus int               `yaml:"attack_bonus"`
	DamageDice  string            `yaml:"damage_dice"`
	Abilities   []AbilityTemplate `yaml:"abilities"`
}
