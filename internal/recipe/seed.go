package recipe

import "github.com/hammamikhairi/souschef/internal/domain"

// seed loads the built-in recipes. These lean on spice checks since
// small-volume ingredients are where measurement help matters most.
func (s *MemorySource) seed() {
	s.Add(&domain.Recipe{
		ID:          "turmeric-rice",
		Name:        "Golden Turmeric Rice",
		Description: "Fragrant yellow rice with turmeric and cumin.",
		Serves:      2,
		Tags:        []string{"rice", "vegetarian", "easy"},
		Ingredients: []domain.RecipeIngredient{
			{Name: "rice", Amount: 1, Unit: domain.UnitCup},
			{Name: "turmeric", Amount: 0.5, Unit: domain.UnitTeaspoon},
			{Name: "cumin", Amount: 1, Unit: domain.UnitTeaspoon},
			{Name: "salt", Amount: 1, Unit: domain.UnitTeaspoon},
			{Name: "oil", Amount: 1, Unit: domain.UnitTablespoon},
			{Name: "water", Amount: 2, Unit: domain.UnitCup},
		},
		Steps: []domain.RecipeStep{
			{
				Instruction: "Rinse one cup of rice under cold water until the water runs clear, then drain.",
			},
			{
				Instruction: "Heat one tablespoon of oil in a pot over medium heat.",
				Safety:      []string{"The pot and oil will get hot. Keep your hands away from the rim."},
			},
			{
				Instruction: "Add one teaspoon of cumin seeds and let them sizzle for about thirty seconds.",
				Safety:      []string{"Hot oil can spit when seeds go in. Add them gently, don't drop them from high up."},
				Check:       &domain.IngredientCheck{Ingredient: "cumin", Amount: 1, Unit: domain.UnitTeaspoon},
			},
			{
				Instruction: "Add half a teaspoon of turmeric and stir for a few seconds.",
				Check:       &domain.IngredientCheck{Ingredient: "turmeric", Amount: 0.5, Unit: domain.UnitTeaspoon},
			},
			{
				Instruction: "Add the drained rice, one teaspoon of salt, and two cups of water. Stir once.",
				Check:       &domain.IngredientCheck{Ingredient: "salt", Amount: 1, Unit: domain.UnitTeaspoon},
			},
			{
				Instruction: "Bring to a boil, then cover and simmer on low for fifteen minutes.",
				Safety:      []string{"Steam will escape when you lift the lid. Tilt it away from your face."},
			},
			{
				Instruction: "Turn off the heat and let the rice rest, covered, for five minutes. Then fluff and serve.",
			},
		},
	})

	s.Add(&domain.Recipe{
		ID:          "simple-dal",
		Name:        "Simple Yellow Dal",
		Description: "Comforting lentils tempered with cumin and chili.",
		Serves:      4,
		Tags:        []string{"lentils", "vegetarian", "indian"},
		Ingredients: []domain.RecipeIngredient{
			{Name: "red lentils", Amount: 1, Unit: domain.UnitCup},
			{Name: "water", Amount: 3, Unit: domain.UnitCup},
			{Name: "turmeric", Amount: 0.25, Unit: domain.UnitTeaspoon},
			{Name: "salt", Amount: 1, Unit: domain.UnitTeaspoon},
			{Name: "oil", Amount: 1, Unit: domain.UnitTablespoon},
			{Name: "cumin", Amount: 0.5, Unit: domain.UnitTeaspoon},
			{Name: "chili powder", Amount: 0.5, Unit: domain.UnitTeaspoon},
		},
		Steps: []domain.RecipeStep{
			{
				Instruction: "Rinse one cup of red lentils and put them in a pot with three cups of water.",
			},
			{
				Instruction: "Add a quarter teaspoon of turmeric and bring to a boil, skimming any foam.",
				Safety:      []string{"Boiling dal foams up fast. Keep the pot no more than half full."},
				Check:       &domain.IngredientCheck{Ingredient: "turmeric", Amount: 0.25, Unit: domain.UnitTeaspoon},
			},
			{
				Instruction: "Simmer for twenty minutes until the lentils are soft, then add one teaspoon of salt.",
				Check:       &domain.IngredientCheck{Ingredient: "salt", Amount: 1, Unit: domain.UnitTeaspoon},
			},
			{
				Instruction: "In a small pan, heat one tablespoon of oil for the tempering.",
				Safety:      []string{"Small pans heat quickly. Don't leave the oil unattended."},
			},
			{
				Instruction: "Add half a teaspoon of cumin seeds and half a teaspoon of chili powder to the hot oil.",
				Safety:      []string{"Chili powder burns in seconds. Take the pan off the heat as soon as it darkens."},
				Check:       &domain.IngredientCheck{Ingredient: "chili powder", Amount: 0.5, Unit: domain.UnitTeaspoon},
			},
			{
				Instruction: "Pour the tempering over the dal, stir, and serve hot.",
			},
		},
	})
}
