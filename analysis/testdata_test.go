package analysis

import "vending-insights/models"

func product(id, brand string, price float64, perf map[string]float64) models.Product {
	return models.Product{ID: id, Name: "Cabinet " + id, Brand: brand, Price: price, Performance: perf}
}

func sampleCatalog() []models.Product {
	return []models.Product{
		product("HAHA-100", "HAHA", 12999, map[string]float64{"recognition": 95, "response": 90}),
		product("HAHA-200", "HAHA", 4200, map[string]float64{"recognition": 70, "response": 74}),
		product("BOX-1", "Boxly", 18000, map[string]float64{"recognition": 96}),
		product("BOX-2", "Boxly", 5000, nil),
		product("ZEN-9", "Zen", 15000, map[string]float64{"recognition": 60}),
	}
}
