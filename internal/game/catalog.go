package game

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// stockSize caps how many wares a trader lays out at once.
const stockSize = 3

// Catalog holds the weapon and monster tables encounters draw from.
type Catalog struct {
	Weapons  []Weapon `yaml:"weapons"`
	Monsters []string `yaml:"monsters"`
}

// LoadCatalog loads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned and validated
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultCatalog is the built-in table used when no data file is
// configured, so the binary runs standalone.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Weapons: []Weapon{
			{Name: "rusty dagger", Strength: 1, Stamina: 0, Price: 5},
			{Name: "cutlass", Strength: 3, Stamina: 1, Price: 20},
			{Name: "boarding axe", Strength: 4, Stamina: 0, Price: 25},
			{Name: "sabre", Strength: 5, Stamina: 1, Price: 40},
			{Name: "flintlock pistol", Strength: 7, Stamina: 0, Price: 60},
		},
		Monsters: []string{
			"ghoul", "skeleton pirate", "giant crab", "sea hag", "kraken spawn",
		},
	}
}

func (c *Catalog) validate() error {
	if len(c.Weapons) == 0 {
		return fmt.Errorf("catalog: no weapons")
	}
	if len(c.Monsters) == 0 {
		return fmt.Errorf("catalog: no monsters")
	}
	for i, w := range c.Weapons {
		if w.Name == "" {
			return fmt.Errorf("catalog: weapon %d has no name", i)
		}
		if w.Price < 0 {
			return fmt.Errorf("catalog: weapon %q has negative price", w.Name)
		}
	}
	return nil
}

func (c *Catalog) randomWeapon() Weapon {
	return c.Weapons[pick(len(c.Weapons))]
}

func (c *Catalog) monsterName() string {
	return c.Monsters[pick(len(c.Monsters))]
}

// stockWeapons deals up to stockSize distinct weapons in catalog
// order, starting from a random offset.
func (c *Catalog) stockWeapons() []Weapon {
	n := len(c.Weapons)
	count := stockSize
	if count > n {
		count = n
	}
	start := pick(n)
	out := make([]Weapon, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, c.Weapons[(start+i)%n])
	}
	return out
}
