package redisx

import "time"

const (
	// Cache per product: product:{product_id} -> json Product, or the
	// notfound sentinel below.
	KeyProduct = "product:%d"

	// Cache the unfiltered product listing: products:all -> json []Product.
	// Filtered/searched listings always go to the DB.
	KeyProductList = "products:all"

	// Negative-cache marker stored under KeyProduct.
	NotFoundSentinel = "notfound"
)

var (
	TTLProduct  = 5 * time.Minute
	TTLNotFound = 1 * time.Minute
	TTLList     = 1 * time.Minute
)
