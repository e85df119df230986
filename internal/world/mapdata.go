package world

// The Mediterranean theater, 264 BC. The dataset is compiled in and
// treated as immutable configuration: the simulation only ever mutates
// owner, fortification, and manpower on the nodes it builds here.

const (
	// StartDay places the opening of the campaign in spring, outside the
	// winter window.
	StartDay = 90

	// StartingGold is the opening treasury of each belligerent.
	StartingGold = 500
)

type nodeSpec struct {
	id, name       string
	kind           NodeKind
	owner          Faction
	income         int
	manpowerGrowth int
	maxManpower    int
	x, y           float64
}

var nodeSpecs = []nodeSpec{
	// Italy
	{"genua", "Genua", NodePort, FactionRome, 150, 3, 300, 42, 12},
	{"roma", "Roma", NodeCity, FactionRome, 300, 5, 500, 50, 22},
	{"capua", "Capua", NodeCity, FactionRome, 150, 4, 400, 54, 28},
	{"tarentum", "Tarentum", NodePort, FactionRome, 180, 3, 300, 62, 33},
	{"rhegium", "Rhegium", NodePort, FactionRome, 120, 2, 250, 58, 40},
	// Sicily
	{"messana", "Messana", NodePort, FactionRome, 120, 2, 250, 56, 44},
	{"panormus", "Panormus", NodePort, FactionCarthage, 130, 2, 250, 50, 45},
	{"lilybaeum", "Lilybaeum", NodePort, FactionCarthage, 150, 2, 300, 46, 48},
	{"syracusae", "Syracusae", NodePort, FactionNeutral, 200, 3, 350, 55, 50},
	// Africa
	{"carthago", "Carthago", NodePort, FactionCarthage, 300, 5, 500, 42, 58},
	{"utica", "Utica", NodePort, FactionCarthage, 150, 3, 300, 40, 55},
	{"hippo", "Hippo Regius", NodePort, FactionCarthage, 120, 2, 250, 33, 55},
	{"cirta", "Cirta", NodeCity, FactionCarthage, 140, 3, 350, 28, 60},
	{"hadrumetum", "Hadrumetum", NodePort, FactionCarthage, 130, 2, 250, 45, 63},
	// Hispania and Gaul
	{"gades", "Gades", NodePort, FactionCarthage, 160, 2, 300, 4, 48},
	{"carthago_nova", "Carthago Nova", NodePort, FactionCarthage, 200, 4, 400, 12, 42},
	{"saguntum", "Saguntum", NodeCity, FactionNeutral, 120, 2, 250, 16, 34},
	{"massilia", "Massilia", NodePort, FactionNeutral, 170, 2, 300, 34, 16},
	// Islands
	{"caralis", "Caralis", NodePort, FactionNeutral, 110, 2, 200, 38, 40},
	{"aleria", "Aleria", NodePort, FactionNeutral, 90, 1, 150, 41, 28},
	// Sea zones
	{"mare_ligusticum", "Mare Ligusticum", NodeSea, FactionNeutral, 0, 0, 0, 38, 20},
	{"mare_tyrrhenum", "Mare Tyrrhenum", NodeSea, FactionNeutral, 0, 0, 0, 48, 34},
	{"mare_sardoum", "Mare Sardoum", NodeSea, FactionCarthage, 0, 0, 0, 30, 44},
	{"mare_ibericum", "Mare Ibericum", NodeSea, FactionCarthage, 0, 0, 0, 20, 44},
	{"mare_africum", "Mare Africum", NodeSea, FactionCarthage, 0, 0, 0, 43, 52},
	{"mare_siculum", "Mare Siculum", NodeSea, FactionNeutral, 0, 0, 0, 51, 52},
	{"mare_ionium", "Mare Ionium", NodeSea, FactionNeutral, 0, 0, 0, 62, 44},
}

// Undirected edges; BuildWorld mirrors each pair into both adjacency
// lists, preserving listed order per endpoint.
var edgeSpecs = [][2]string{
	{"genua", "roma"},
	{"genua", "massilia"},
	{"genua", "mare_ligusticum"},
	{"roma", "capua"},
	{"capua", "tarentum"},
	{"capua", "rhegium"},
	{"tarentum", "mare_ionium"},
	{"rhegium", "messana"},
	{"rhegium", "mare_ionium"},
	{"messana", "panormus"},
	{"messana", "syracusae"},
	{"messana", "mare_tyrrhenum"},
	{"panormus", "lilybaeum"},
	{"panormus", "mare_tyrrhenum"},
	{"lilybaeum", "mare_siculum"},
	{"lilybaeum", "mare_africum"},
	{"syracusae", "mare_siculum"},
	{"syracusae", "mare_ionium"},
	{"carthago", "utica"},
	{"carthago", "hadrumetum"},
	{"carthago", "mare_africum"},
	{"utica", "hippo"},
	{"utica", "mare_africum"},
	{"hippo", "cirta"},
	{"hippo", "mare_sardoum"},
	{"hadrumetum", "mare_africum"},
	{"carthago_nova", "saguntum"},
	{"carthago_nova", "gades"},
	{"carthago_nova", "mare_ibericum"},
	{"saguntum", "massilia"},
	{"massilia", "mare_ligusticum"},
	{"caralis", "mare_sardoum"},
	{"caralis", "mare_tyrrhenum"},
	{"aleria", "mare_ligusticum"},
	{"aleria", "mare_tyrrhenum"},
	{"mare_ligusticum", "mare_tyrrhenum"},
	{"mare_ligusticum", "mare_sardoum"},
	{"mare_tyrrhenum", "mare_siculum"},
	{"mare_tyrrhenum", "mare_sardoum"},
	{"mare_sardoum", "mare_ibericum"},
	{"mare_sardoum", "mare_africum"},
	{"mare_africum", "mare_siculum"},
	{"mare_siculum", "mare_ionium"},
}

type garrisonSpec struct {
	faction Faction
	kind    UnitKind
	node    string
}

// Opening garrisons. These start fully trained, unlike recruited units.
var garrisonSpecs = []garrisonSpec{
	{FactionRome, UnitLegion, "roma"},
	{FactionRome, UnitLegion, "capua"},
	{FactionRome, UnitFleet, "mare_tyrrhenum"},
	{FactionCarthage, UnitLevy, "carthago"},
	{FactionCarthage, UnitLevy, "lilybaeum"},
	{FactionCarthage, UnitFleet, "mare_africum"},
	{FactionCarthage, UnitFleet, "mare_sardoum"},
}

// BuildWorld assembles the fixed campaign map with its opening garrisons
// and treasuries.
func BuildWorld() (*World, error) {
	w := NewWorld()
	for _, s := range nodeSpecs {
		w.AddNode(&Node{
			ID:             s.id,
			Name:           s.name,
			Kind:           s.kind,
			Owner:          s.owner,
			Income:         s.income,
			ManpowerGrowth: s.manpowerGrowth,
			Manpower:       s.maxManpower / 2,
			MaxManpower:    s.maxManpower,
			X:              s.x,
			Y:              s.y,
		})
	}
	for _, e := range edgeSpecs {
		w.Nodes[e[0]].Adjacent = append(w.Nodes[e[0]].Adjacent, e[1])
		w.Nodes[e[1]].Adjacent = append(w.Nodes[e[1]].Adjacent, e[0])
	}

	w.Capitals[FactionRome] = "roma"
	w.Capitals[FactionCarthage] = "carthago"
	w.Gold[FactionRome] = StartingGold
	w.Gold[FactionCarthage] = StartingGold
	w.Day = StartDay

	for _, g := range garrisonSpecs {
		u := NewUnit(g.faction, g.kind, g.node, 100)
		u.Training = false
		u.TrainingProgress = 100
		w.Units = append(w.Units, u)
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}
