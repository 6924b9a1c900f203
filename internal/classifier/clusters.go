package classifier

// #region clusters

// Cluster is a named keyword set that resolves to a QueryShape.
type Cluster struct {
	Name     string
	Shape    QueryShape
	Keywords map[string]bool
}

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// clusters are checked in this order; ties keep the earlier cluster.
var clusters = []Cluster{
	{
		Name:  "CAPITAL",
		Shape: ShapeCapitalOf,
		Keywords: keywordSet("capital", "seat", "government", "rule", "govern",
			"headquarters", "center", "city", "administrative"),
	},
	{
		Name:  "FOUNDER",
		Shape: ShapeFounderOf,
		Keywords: keywordSet("founder", "found", "create", "created", "start",
			"started", "build", "built", "establish", "originate", "begin",
			"began", "commence", "launched", "creator", "father"),
	},
	{
		Name:  "POPULATION",
		Shape: ShapePopulationOf,
		Keywords: keywordSet("population", "people", "inhabitants", "citizens",
			"residents", "live", "living", "populate", "demographics"),
	},
	{
		Name:  "PHYSICS",
		Shape: ShapePhysicsLaw,
		Keywords: keywordSet("law", "theory", "principle", "equation", "force",
			"motion", "relativity", "thermodynamics", "gravity", "physics"),
	},
	{
		Name:  "ELEMENT",
		Shape: ShapeAtomicNumber,
		Keywords: keywordSet("element", "atom", "atomic", "chemical", "periodic",
			"symbol", "molecule", "compound", "proton", "electron"),
	},
}

// Clusters returns the cluster names in check order.
func Clusters() []string {
	names := make([]string, len(clusters))
	for i, c := range clusters {
		names[i] = c.Name
	}
	return names
}

// #endregion
