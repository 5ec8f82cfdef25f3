package catalog

// FacetGroupHierarchy is the authoritative facet-group-to-hierarchy
// mapping (spec §6). It is fixed by the FoodEx2 scheme, not
// catalogue-loaded: a descriptor in group F28 must always resolve against
// the "process" hierarchy, regardless of catalogue snapshot.
var FacetGroupHierarchy = map[string]string{
	"F01": "source",
	"F02": "part",
	"F03": "state",
	"F04": "ingred",
	"F06": "medium",
	"F07": "fat",
	"F08": "sweet",
	"F09": "fort",
	"F10": "qual",
	"F11": "alcohol",
	"F12": "dough",
	"F17": "cookext",
	"F18": "packformat",
	"F19": "packmat",
	"F20": "partcon",
	"F21": "prod",
	"F22": "place",
	"F23": "targcon",
	"F24": "use",
	"F25": "riskingred",
	"F26": "gen",
	"F27": "racsource",
	"F28": "process",
	"F29": "fpurpose",
	"F30": "replev",
	"F31": "animage",
	"F32": "gender",
	"F33": "legis",
	"F34": "hostsampled",
}

// SingleCardinalityGroups is the set of facet groups that may appear at
// most once among a FoodEx2 expression's explicit facets.
var SingleCardinalityGroups = map[string]bool{
	"F01": true,
	"F02": true,
	"F03": true,
	"F07": true,
	"F11": true,
	"F22": true,
	"F24": true,
	"F26": true,
	"F30": true,
	"F32": true,
	"F34": true,
}
