package shopify

// ProductCreateMutation creates a product (one per vessel)
const ProductCreateMutation = `
mutation productCreate($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id
      title
      handle
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkCreateMutation creates the wax x wick variant matrix on
// a freshly created vessel product
const ProductVariantsBulkCreateMutation = `
mutation productVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkCreate(productId: $productId, variants: $variants) {
    productVariants {
      id
      sku
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkUpdateMutation updates variant prices in batches grouped
// by parent product (one provider call per product)
const ProductVariantsBulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
      price
    }
    userErrors {
      field
      message
    }
  }
}
`

// InventoryAdjustQuantitiesMutation applies a manual quantity delta at a
// location ("quick update" path)
const InventoryAdjustQuantitiesMutation = `
mutation inventoryAdjustQuantities($input: InventoryAdjustQuantitiesInput!) {
  inventoryAdjustQuantities(input: $input) {
    inventoryAdjustmentGroup {
      createdAt
      reason
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductInput is the input for productCreate
type ProductInput struct {
	Title           string   `json:"title"`
	DescriptionHTML *string  `json:"descriptionHtml,omitempty"`
	Vendor          *string  `json:"vendor,omitempty"`
	ProductType     *string  `json:"productType,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

// ProductVariantsBulkInput is one variant row for the bulk create/update
// mutations. Price is a decimal string per the Admin API.
type ProductVariantsBulkInput struct {
	ID            *string                `json:"id,omitempty"`
	Price         *string                `json:"price,omitempty"`
	OptionValues  []VariantOptionValue   `json:"optionValues,omitempty"`
	InventoryItem *VariantInventoryInput `json:"inventoryItem,omitempty"`
}

type VariantOptionValue struct {
	OptionName string `json:"optionName"`
	Name       string `json:"name"`
}

type VariantInventoryInput struct {
	SKU     string `json:"sku"`
	Tracked *bool  `json:"tracked,omitempty"`
}

// InventoryAdjustQuantitiesInput is the input for inventoryAdjustQuantities
type InventoryAdjustQuantitiesInput struct {
	Reason  string                 `json:"reason"`
	Name    string                 `json:"name"`
	Changes []InventoryChangeInput `json:"changes"`
}

type InventoryChangeInput struct {
	InventoryItemID string `json:"inventoryItemId"`
	LocationID      string `json:"locationId"`
	Delta           int    `json:"delta"`
}

// UserError is the shape Shopify returns inside every mutation payload
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
