package domain

import "math"

// MaxStockQuantity is the largest quantity the ledger can hold for a single
// ingredient (32-bit signed max).
const MaxStockQuantity = math.MaxInt32

// DefaultMaxRecipes is the default ceiling on concurrently defined recipes
const DefaultMaxRecipes = 3
