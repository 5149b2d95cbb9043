package petlookup

// matchup is one row of the family strength chart
type matchup struct {
	strong PetType // takes double damage from this family's abilities
	weak   PetType // deals reduced damage to this family
}

var typeChart = map[PetType]matchup{
	Aquatic:    {strong: Elemental, weak: Magic},
	Beast:      {strong: Critter, weak: Flying},
	Critter:    {strong: Undead, weak: Humanoid},
	Dragonkin:  {strong: Magic, weak: Undead},
	Elemental:  {strong: Mechanical, weak: Critter},
	Flying:     {strong: Aquatic, weak: Dragonkin},
	Humanoid:   {strong: Dragonkin, weak: Beast},
	Magic:      {strong: Flying, weak: Mechanical},
	Mechanical: {strong: Beast, weak: Elemental},
	Undead:     {strong: Humanoid, weak: Aquatic},
}

// StrongAgainst returns the families t deals bonus damage to
func StrongAgainst(t PetType) []PetType {
	m, ok := typeChart[t]
	if !ok {
		return nil
	}
	return []PetType{m.strong}
}

// WeakAgainst returns the families t deals reduced damage to
func WeakAgainst(t PetType) []PetType {
	m, ok := typeChart[t]
	if !ok {
		return nil
	}
	return []PetType{m.weak}
}

// CounterTypes returns, in selection order, the families strong against t
func CounterTypes(t PetType) []PetType {
	var out []PetType
	for _, pt := range petTypes {
		if typeChart[pt].strong == t {
			out = append(out, pt)
		}
	}
	return out
}
