package catalog

// Seed data mirrors the storefront's launch grid.

func defaultProducts() []Product {
	return []Product{
		{
			ASIN:               "B0SEED00001",
			Title:              "Galaxy S23 Ultra",
			PriceCents:         99999,
			OriginalPriceCents: 119999,
			Image:              "/placeholder.svg",
			Category:           "Mobile",
			Discount:           15,
		},
		{
			ASIN:               "B0SEED00002",
			Title:              "Galaxy M13",
			PriceCents:         29999,
			OriginalPriceCents: 34999,
			Image:              "/placeholder.svg",
			Category:           "Mobile",
			Discount:           10,
		},
	}
}

func defaultCategories() []Category {
	names := []string{"Mobile", "Cosmetics", "Electronics", "Furniture", "Watches", "Decor", "Accessories"}
	out := make([]Category, 0, len(names))
	for _, n := range names {
		out = append(out, Category{Name: n})
	}
	return out
}
