package catalog

import "echolens/internal/models"

var builtinSystems = []Entry{
	{ID: "trappist-1", Record: models.StarSystemRecord{
		Name:            "TRAPPIST-1",
		RA:              346.6223,
		Dec:             -5.0413,
		Period:          1.51087,
		PlanetRadius:    1.127,
		StellarMass:     0.0898,
		StellarRadius:   0.1192,
		DistanceOverRad: 4.5,
		EquilibriumTemp: 400.5,
		Insolation:      4.65,
		Score:           0.951,
		Disposition:     0.912,
	}},
	{ID: "kepler-62", Record: models.StarSystemRecord{
		Name:            "Kepler-62",
		RA:              283.7850,
		Dec:             45.3477,
		Period:          122.387,
		PlanetRadius:    1.610,
		StellarMass:     0.690,
		StellarRadius:   0.640,
		DistanceOverRad: 12.8,
		EquilibriumTemp: 270.0,
		Insolation:      1.195,
		Score:           0.923,
		Disposition:     0.874,
	}},
	{ID: "tess-14", Record: models.StarSystemRecord{
		Name:            "TESS-14",
		RA:              65.3214,
		Dec:             -20.4356,
		Period:          3.1267,
		PlanetRadius:    1.201,
		StellarMass:     1.032,
		StellarRadius:   0.989,
		DistanceOverRad: 6.2,
		EquilibriumTemp: 915.3,
		Insolation:      5.120,
		Score:           0.881,
		Disposition:     0.853,
	}},
	{ID: "proxima-centauri", Record: models.StarSystemRecord{
		Name:            "Proxima Centauri",
		RA:              217.4289,
		Dec:             -62.6795,
		Period:          11.186,
		PlanetRadius:    1.070,
		StellarMass:     0.123,
		StellarRadius:   0.154,
		DistanceOverRad: 8.9,
		EquilibriumTemp: 234.0,
		Insolation:      0.650,
		Score:           0.896,
		Disposition:     0.889,
	}},
	{ID: "kepler-235-e", Record: models.StarSystemRecord{
		Name:            "Kepler-235 e",
		RA:              286.07913,
		Dec:             39.27832,
		Period:          46.1842039,
		PlanetRadius:    1.83,
		StellarMass:     0.502,
		StellarRadius:   0.493,
		DistanceOverRad: 76.67,
		EquilibriumTemp: 273.0,
		Insolation:      1.32,
		Score:           0.7403,
		Disposition:     0.242,
	}},
	{ID: "kepler-155-c", Record: models.StarSystemRecord{
		Name:            "Kepler-155 c",
		RA:              288.49582,
		Dec:             51.08194,
		Period:          52.6615266,
		PlanetRadius:    1.87,
		StellarMass:     0.557,
		StellarRadius:   0.539,
		DistanceOverRad: 98.6,
		EquilibriumTemp: 271.0,
		Insolation:      1.28,
		Score:           0.7374,
		Disposition:     1,
	}},
	{ID: "kepler-1653-b", Record: models.StarSystemRecord{
		Name:            "Kepler-1653 b",
		RA:              296.45776,
		Dec:             41.266022,
		Period:          140.251943,
		PlanetRadius:    1.84,
		StellarMass:     0.765,
		StellarRadius:   0.788,
		DistanceOverRad: 157.9,
		EquilibriumTemp: 271.0,
		Insolation:      1.28,
		Score:           0.7304,
		Disposition:     1,
	}},
	{ID: "kepler-1455-b", Record: models.StarSystemRecord{
		Name:            "Kepler-1455 b",
		RA:              294.08307,
		Dec:             50.502769,
		Period:          49.2768448,
		PlanetRadius:    1.75,
		StellarMass:     0.528,
		StellarRadius:   0.529,
		DistanceOverRad: 102.4,
		EquilibriumTemp: 271.0,
		Insolation:      1.28,
		Score:           0.7094,
		Disposition:     1,
	}},
	{ID: "kepler-62-e", Record: models.StarSystemRecord{
		Name:            "Kepler-62 e",
		RA:              283.21274,
		Dec:             45.349861,
		Period:          122.3858681,
		PlanetRadius:    1.72,
		StellarMass:     0.727,
		StellarRadius:   0.662,
		DistanceOverRad: 133.71,
		EquilibriumTemp: 269.0,
		Insolation:      1.24,
		Score:           0.6901,
		Disposition:     1,
	}},
	{ID: "kepler-560-b", Record: models.StarSystemRecord{
		Name:            "Kepler-560 b",
		RA:              300.20609,
		Dec:             45.018139,
		Period:          18.47762694,
		PlanetRadius:    1.55,
		StellarMass:     0.271,
		StellarRadius:   0.283,
		DistanceOverRad: 56.2,
		EquilibriumTemp: 267.0,
		Insolation:      1.21,
		Score:           0.64,
		Disposition:     1,
	}},
	{ID: "kepler-1450-b", Record: models.StarSystemRecord{
		Name:            "Kepler-1450 b",
		RA:              294.55383,
		Dec:             45.08139,
		Period:          54.5091549,
		PlanetRadius:    1.94,
		StellarMass:     0.621,
		StellarRadius:   0.603,
		DistanceOverRad: 34.2,
		EquilibriumTemp: 308.0,
		Insolation:      2.13,
		Score:           0.6314,
		Disposition:     1,
	}},
	{ID: "kepler-1816-b", Record: models.StarSystemRecord{
		Name:            "Kepler-1816 b",
		RA:              296.85101,
		Dec:             50.698929,
		Period:          91.500873,
		PlanetRadius:    1.82,
		StellarMass:     0.786,
		StellarRadius:   0.706,
		DistanceOverRad: 147.71,
		EquilibriumTemp: 310.0,
		Insolation:      2.18,
		Score:           0.608,
		Disposition:     1,
	}},
	{ID: "kepler-267-d", Record: models.StarSystemRecord{
		Name:            "Kepler-267 d",
		RA:              299.83041,
		Dec:             47.157459,
		Period:          28.46464804,
		PlanetRadius:    1.87,
		StellarMass:     0.467,
		StellarRadius:   0.46,
		DistanceOverRad: 84.56,
		EquilibriumTemp: 301.0,
		Insolation:      1.95,
		Score:           0.5989,
		Disposition:     1,
	}},
	{ID: "kepler-737-b", Record: models.StarSystemRecord{
		Name:            "Kepler-737 b",
		RA:              291.86285,
		Dec:             46.42926,
		Period:          28.59914031,
		PlanetRadius:    1.83,
		StellarMass:     0.47,
		StellarRadius:   0.461,
		DistanceOverRad: 61.92,
		EquilibriumTemp: 298.0,
		Insolation:      1.87,
		Score:           0.5826,
		Disposition:     1,
	}},
	{ID: "kepler-283-c", Record: models.StarSystemRecord{
		Name:            "Kepler-283 c",
		RA:              293.61371,
		Dec:             47.839001,
		Period:          92.7495777,
		PlanetRadius:    1.87,
		StellarMass:     0.596,
		StellarRadius:   0.582,
		DistanceOverRad: 132.45,
		EquilibriumTemp: 240.0,
		Insolation:      0.78,
		Score:           0.5697,
		Disposition:     1,
	}},
	{ID: "kepler-705-b", Record: models.StarSystemRecord{
		Name:            "Kepler-705 b",
		RA:              289.50848,
		Dec:             41.812119,
		Period:          56.0560754,
		PlanetRadius:    1.94,
		StellarMass:     0.503,
		StellarRadius:   0.491,
		DistanceOverRad: 94.7,
		EquilibriumTemp: 233.0,
		Insolation:      0.69,
		Score:           0.5525,
		Disposition:     1,
	}},
	{ID: "kepler-437-b", Record: models.StarSystemRecord{
		Name:            "Kepler-437 b",
		RA:              297.34738,
		Dec:             44.026939,
		Period:          66.6504521,
		PlanetRadius:    1.56,
		StellarMass:     0.713,
		StellarRadius:   0.679,
		DistanceOverRad: 82.0,
		EquilibriumTemp: 308.0,
		Insolation:      2.14,
		Score:           0.5427,
		Disposition:     1,
	}},
	{ID: "kepler-69-c", Record: models.StarSystemRecord{
		Name:            "Kepler-69 c",
		RA:              293.26093,
		Dec:             44.868889,
		Period:          242.467406,
		PlanetRadius:    1.73,
		StellarMass:     0.813,
		StellarRadius:   0.943,
		DistanceOverRad: 144.9,
		EquilibriumTemp: 286.0,
		Insolation:      1.59,
		Score:           0.5422,
		Disposition:     0,
	}},
	{ID: "kepler-1544-b", Record: models.StarSystemRecord{
		Name:            "Kepler-1544 b",
		RA:              297.285,
		Dec:             49.21246,
		Period:          168.81133,
		PlanetRadius:    1.69,
		StellarMass:     0.771,
		StellarRadius:   0.707,
		DistanceOverRad: 199.6,
		EquilibriumTemp: 241.0,
		Insolation:      0.8,
		Score:           0.5338,
		Disposition:     1,
	}},
	{ID: "kepler-1634-b", Record: models.StarSystemRecord{
		Name:            "Kepler-1634 b",
		RA:              294.0434,
		Dec:             45.139778,
		Period:          374.878133,
		PlanetRadius:    4.27,
		StellarMass:     1.103,
		StellarRadius:   1.354,
		DistanceOverRad: 221.6,
		EquilibriumTemp: 282.0,
		Insolation:      1.49,
		Score:           0.5272,
		Disposition:     1,
	}},
}
