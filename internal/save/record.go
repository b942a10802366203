// Package save moves sessions across the remote persistence boundary.
// The wire shape is historical and fixed: saves are submitted with
// native JSON numbers, but loaded records come back with every numeric
// field string-encoded and the equipped flag spelled "equiped" as
// "0"/"1". Loading parses strictly and fails closed on any malformed
// field, before a player is ever constructed.
package save

import (
	"fmt"
	"strconv"

	"questwalk/internal/game"
)

// Summary identifies one saved session in a listing.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WeaponRecord is a weapon as submitted for storage.
type WeaponRecord struct {
	Name  string `json:"name"`
	Str   int    `json:"str"`
	Sta   int    `json:"sta"`
	Price int    `json:"price"`
}

// ItemRecord is one inventory slot as submitted for storage.
type ItemRecord struct {
	Weapon   WeaponRecord `json:"weapon"`
	Equipped bool         `json:"equiped"`
}

// Record is the flat save payload: what a client POSTs and what the
// store keeps.
type Record struct {
	Name      string       `json:"name"`
	Life      int          `json:"life"`
	XP        int          `json:"xp"`
	Str       int          `json:"str"`
	Sta       int          `json:"sta"`
	Weapon    WeaponRecord `json:"weapon"`
	Inventory []ItemRecord `json:"inventory"`
	Gold      int          `json:"gold"`
}

// WireWeapon is a weapon as the backend returns it on load.
type WireWeapon struct {
	Name  string `json:"name"`
	Str   string `json:"str"`
	Sta   string `json:"sta"`
	Price string `json:"price"`
}

// WireItem is one inventory slot as returned on load.
type WireItem struct {
	Weapon  WireWeapon `json:"weapon"`
	Equiped string     `json:"equiped"`
}

// WireRecord is the load response: the same flat record with every
// numeric field string-encoded.
type WireRecord struct {
	Name      string     `json:"name"`
	Life      string     `json:"life"`
	XP        string     `json:"xp"`
	Str       string     `json:"str"`
	Sta       string     `json:"sta"`
	Weapon    WireWeapon `json:"weapon"`
	Inventory []WireItem `json:"inventory"`
	Gold      string     `json:"gold"`
}

// FromSnapshot builds the storable record for a player snapshot.
func FromSnapshot(name string, s game.Snapshot) Record {
	r := Record{
		Name:   name,
		Life:   s.Life,
		XP:     s.XP,
		Str:    s.Strength,
		Sta:    s.Stamina,
		Gold:   s.Gold,
		Weapon: weaponRecord(s.Weapon),
	}
	for _, item := range s.Inventory {
		r.Inventory = append(r.Inventory, ItemRecord{
			Weapon:   weaponRecord(item.Weapon),
			Equipped: item.Equipped,
		})
	}
	return r
}

// Snapshot reconstructs the player snapshot a record describes.
func (r Record) Snapshot() game.Snapshot {
	s := game.Snapshot{
		Name:     r.Name,
		Life:     r.Life,
		XP:       r.XP,
		Strength: r.Str,
		Stamina:  r.Sta,
		Gold:     r.Gold,
		Weapon:   r.Weapon.weapon(),
	}
	for _, item := range r.Inventory {
		s.Inventory = append(s.Inventory, game.InventoryItem{
			Weapon:   item.Weapon.weapon(),
			Equipped: item.Equipped,
		})
	}
	return s
}

// Wire re-encodes a record the way the backend serves it on load.
func (r Record) Wire() WireRecord {
	w := WireRecord{
		Name:   r.Name,
		Life:   strconv.Itoa(r.Life),
		XP:     strconv.Itoa(r.XP),
		Str:    strconv.Itoa(r.Str),
		Sta:    strconv.Itoa(r.Sta),
		Gold:   strconv.Itoa(r.Gold),
		Weapon: wireWeapon(r.Weapon),
	}
	for _, item := range r.Inventory {
		flag := "0"
		if item.Equipped {
			flag = "1"
		}
		w.Inventory = append(w.Inventory, WireItem{
			Weapon:  wireWeapon(item.Weapon),
			Equiped: flag,
		})
	}
	return w
}

// Record parses a wire record, failing on the first malformed field.
func (w WireRecord) Record() (Record, error) {
	r := Record{Name: w.Name}
	var err error
	if r.Life, err = parseField("life", w.Life); err != nil {
		return Record{}, err
	}
	if r.XP, err = parseField("xp", w.XP); err != nil {
		return Record{}, err
	}
	if r.Str, err = parseField("str", w.Str); err != nil {
		return Record{}, err
	}
	if r.Sta, err = parseField("sta", w.Sta); err != nil {
		return Record{}, err
	}
	if r.Gold, err = parseField("gold", w.Gold); err != nil {
		return Record{}, err
	}
	if r.Weapon, err = w.Weapon.record(); err != nil {
		return Record{}, err
	}
	for i, item := range w.Inventory {
		wr, err := item.Weapon.record()
		if err != nil {
			return Record{}, fmt.Errorf("inventory %d: %w", i, err)
		}
		var equipped bool
		switch item.Equiped {
		case "1":
			equipped = true
		case "0":
			equipped = false
		default:
			return Record{}, fmt.Errorf("inventory %d: bad equiped flag %q", i, item.Equiped)
		}
		r.Inventory = append(r.Inventory, ItemRecord{Weapon: wr, Equipped: equipped})
	}
	return r, nil
}

func (w WireWeapon) record() (WeaponRecord, error) {
	// The no-weapon case travels as an empty name with zero stats.
	r := WeaponRecord{Name: w.Name}
	var err error
	if r.Str, err = parseField("weapon str", w.Str); err != nil {
		return WeaponRecord{}, err
	}
	if r.Sta, err = parseField("weapon sta", w.Sta); err != nil {
		return WeaponRecord{}, err
	}
	if r.Price, err = parseField("weapon price", w.Price); err != nil {
		return WeaponRecord{}, err
	}
	return r, nil
}

func parseField(field, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("malformed record: field %s = %q", field, v)
	}
	return n, nil
}

func weaponRecord(w game.Weapon) WeaponRecord {
	return WeaponRecord{Name: w.Name, Str: w.Strength, Sta: w.Stamina, Price: w.Price}
}

func wireWeapon(w WeaponRecord) WireWeapon {
	return WireWeapon{
		Name:  w.Name,
		Str:   strconv.Itoa(w.Str),
		Sta:   strconv.Itoa(w.Sta),
		Price: strconv.Itoa(w.Price),
	}
}

func (w WeaponRecord) weapon() game.Weapon {
	return game.Weapon{Name: w.Name, Strength: w.Str, Stamina: w.Sta, Price: w.Price}
}
