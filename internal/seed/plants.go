package seed

import "greenpatch/internal/models"

// Plants returns the grow guide catalogue.
func Plants() []models.Plant {
	return []models.Plant{
		{ID: 1, Name: "Tomato", Image: "🍅", Soil: "Loamy", Water: "Moderate", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "vegetable", Difficulty: "Easy", DaysToHarvest: 75, ContainerSize: "18-24 inches"},
		{ID: 2, Name: "Chili Pepper", Image: "🌶️", Soil: "Well-drained", Water: "Moderate", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "vegetable", Difficulty: "Easy", DaysToHarvest: 70, ContainerSize: "12-16 inches"},
		{ID: 3, Name: "Bell Pepper", Image: "🫑", Soil: "Rich Loamy", Water: "Regular", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "vegetable", Difficulty: "Medium", DaysToHarvest: 80, ContainerSize: "16-20 inches"},
		{ID: 4, Name: "Eggplant", Image: "🍆", Soil: "Well-drained", Water: "Regular", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "vegetable", Difficulty: "Medium", DaysToHarvest: 85, ContainerSize: "20-24 inches"},
		{ID: 5, Name: "Cucumber", Image: "🥒", Soil: "Rich Loamy", Water: "Frequent", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "vegetable", Difficulty: "Easy", DaysToHarvest: 55, ContainerSize: "16-20 inches"},
		{ID: 6, Name: "Lettuce", Image: "🥬", Soil: "Moist", Water: "Regular", Sunlight: "Partial Shade", Season: "Spring/Fall", Category: "vegetable", Difficulty: "Easy", DaysToHarvest: 45, ContainerSize: "8-12 inches"},
		{ID: 7, Name: "Spinach", Image: "🥬", Soil: "Rich", Water: "Regular", Sunlight: "Partial Sun", Season: "Spring/Fall", Category: "vegetable", Difficulty: "Easy", DaysToHarvest: 40, ContainerSize: "8-12 inches"},
		{ID: 8, Name: "Radish", Image: "🔴", Soil: "Loose", Water: "Regular", Sunlight: "Full Sun", Season: "Spring/Fall", Category: "vegetable", Difficulty: "Easy", DaysToHarvest: 25, ContainerSize: "8-10 inches deep"},
		{ID: 9, Name: "Carrot", Image: "🥕", Soil: "Sandy Loam", Water: "Moderate", Sunlight: "Full Sun", Season: "Spring/Fall", Category: "vegetable", Difficulty: "Medium", DaysToHarvest: 70, ContainerSize: "12-16 inches deep"},
		{ID: 10, Name: "Basil", Image: "🌿", Soil: "Well-drained", Water: "Regular", Sunlight: "Partial Shade", Season: "Spring/Summer", Category: "herb", Difficulty: "Easy", DaysToHarvest: 30, ContainerSize: "8-12 inches"},
		{ID: 11, Name: "Mint", Image: "🌱", Soil: "Moist", Water: "Frequent", Sunlight: "Partial Sun", Season: "Spring/Fall", Category: "herb", Difficulty: "Easy", DaysToHarvest: 40, ContainerSize: "10-14 inches"},
		{ID: 12, Name: "Coriander", Image: "🌿", Soil: "Well-drained", Water: "Moderate", Sunlight: "Partial Sun", Season: "Spring/Fall", Category: "herb", Difficulty: "Easy", DaysToHarvest: 35, ContainerSize: "8-12 inches"},
		{ID: 13, Name: "Parsley", Image: "🌿", Soil: "Rich Moist", Water: "Regular", Sunlight: "Partial Shade", Season: "Spring/Fall", Category: "herb", Difficulty: "Easy", DaysToHarvest: 45, ContainerSize: "8-12 inches"},
		{ID: 14, Name: "Rosemary", Image: "🌿", Soil: "Well-drained", Water: "Minimal", Sunlight: "Full Sun", Season: "Year-round", Category: "herb", Difficulty: "Medium", DaysToHarvest: 60, ContainerSize: "12-16 inches"},
		{ID: 15, Name: "Thyme", Image: "🌿", Soil: "Well-drained", Water: "Minimal", Sunlight: "Full Sun", Season: "Year-round", Category: "herb", Difficulty: "Easy", DaysToHarvest: 50, ContainerSize: "8-10 inches"},
		{ID: 16, Name: "Oregano", Image: "🌿", Soil: "Well-drained", Water: "Moderate", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "herb", Difficulty: "Easy", DaysToHarvest: 45, ContainerSize: "10-12 inches"},
		{ID: 17, Name: "Lemongrass", Image: "🌾", Soil: "Rich Loamy", Water: "Regular", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "herb", Difficulty: "Medium", DaysToHarvest: 90, ContainerSize: "16-20 inches"},
		{ID: 18, Name: "Strawberry", Image: "🍓", Soil: "Well-drained", Water: "Regular", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "fruit", Difficulty: "Medium", DaysToHarvest: 120, ContainerSize: "12-16 inches"},
		{ID: 19, Name: "Lemon", Image: "🍋", Soil: "Well-drained", Water: "Regular", Sunlight: "Full Sun", Season: "Year-round", Category: "fruit", Difficulty: "Hard", DaysToHarvest: 365, ContainerSize: "24-30 inches"},
		{ID: 20, Name: "Cherry Tomato", Image: "🍒", Soil: "Rich Loamy", Water: "Regular", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "fruit", Difficulty: "Easy", DaysToHarvest: 60, ContainerSize: "14-18 inches"},
		{ID: 21, Name: "Marigold", Image: "🌼", Soil: "Well-drained", Water: "Moderate", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "flower", Difficulty: "Easy", ContainerSize: "10-12 inches"},
		{ID: 22, Name: "Petunia", Image: "🌸", Soil: "Well-drained", Water: "Regular", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "flower", Difficulty: "Easy", ContainerSize: "10-14 inches"},
		{ID: 23, Name: "Geranium", Image: "🌺", Soil: "Well-drained", Water: "Moderate", Sunlight: "Full Sun", Season: "Spring/Summer", Category: "flower", Difficulty: "Easy", ContainerSize: "12-16 inches"},
		{ID: 24, Name: "Aloe Vera", Image: "🪴", Soil: "Sandy", Water: "Minimal", Sunlight: "Bright Indirect", Season: "Year-round", Category: "succulent", Difficulty: "Easy", ContainerSize: "10-14 inches"},
		{ID: 25, Name: "Jade Plant", Image: "🌿", Soil: "Well-drained", Water: "Minimal", Sunlight: "Bright Light", Season: "Year-round", Category: "succulent", Difficulty: "Easy", ContainerSize: "8-12 inches"},
		{ID: 26, Name: "Snake Plant", Image: "🌿", Soil: "Well-drained", Water: "Minimal", Sunlight: "Low to Bright", Season: "Year-round", Category: "succulent", Difficulty: "Easy", ContainerSize: "10-14 inches"},
	}
}
