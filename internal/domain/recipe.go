// Package domain defines the core types and interfaces for the sous-chef
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

// Recipe represents a complete cooking recipe.
type Recipe struct {
	ID          string
	Name        string
	Description string
	Serves      int
	Ingredients []RecipeIngredient
	Steps       []RecipeStep
	Tags        []string
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID          string
	Name        string
	Description string
	Tags        []string
}

// RecipeIngredient is a single line of a recipe's ingredient list.
type RecipeIngredient struct {
	Name   string
	Amount float64
	Unit   Unit
}

// RecipeStep is a single instruction in a recipe. Safety warnings are
// spoken before the instruction, in order. A step may optionally carry
// an IngredientCheck, in which case the assistant verifies the amount
// the user has added before letting them move on.
type RecipeStep struct {
	Instruction string
	Safety      []string
	Check       *IngredientCheck
}

// IngredientCheck names the ingredient and amount a step expects.
// Amount is always >= 0; an Amount of 0 means the ingredient must not
// be added at this step.
type IngredientCheck struct {
	Ingredient string
	Amount     float64
	Unit       Unit
}
