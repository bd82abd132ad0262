package shopify

// LocationsQuery lists configured fulfillment locations
const LocationsQuery = `
query getLocations($first: Int!) {
  locations(first: $first) {
    edges {
      node {
        id
        name
        isActive
        address {
          city
          province
          country
        }
      }
    }
  }
}
`

// ProductsWithVariantsQuery fetches products with their variants, used to map
// computed variants back onto their parent products before a bulk update
const ProductsWithVariantsQuery = `
query getProducts($first: Int!, $after: String, $query: String) {
  products(first: $first, after: $after, query: $query) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        handle
        variants(first: 250) {
          edges {
            node {
              id
              sku
              title
              price
              inventoryItem {
                id
              }
            }
          }
        }
      }
    }
  }
}
`
