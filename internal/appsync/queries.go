package appsync

// GetFeatureFlagQuery reads one named boolean flag
const GetFeatureFlagQuery = `
query getFeatureFlag($key: String!) {
  getFeatureFlag(key: $key) {
    key
    value
    updatedAt
    updatedBy
  }
}
`

// SetFeatureFlagMutation writes one named boolean flag (admin secret required)
const SetFeatureFlagMutation = `
mutation setFeatureFlag($key: String!, $value: Boolean!, $updatedBy: String!) {
  setFeatureFlag(key: $key, value: $value, updatedBy: $updatedBy) {
    key
    value
    updatedAt
    updatedBy
  }
}
`

// GetMagicRequestConfigQuery reads the option lists shown on the public
// storefront's custom-order form
const GetMagicRequestConfigQuery = `
query getMagicRequestConfig {
  getMagicRequestConfig {
    waxes
    sizes
    wicks
    jars
    updatedAt
  }
}
`

// SetMagicRequestConfigMutation replaces the storefront option lists
const SetMagicRequestConfigMutation = `
mutation setMagicRequestConfig($input: MagicRequestConfigInput!) {
  setMagicRequestConfig(input: $input) {
    waxes
    sizes
    wicks
    jars
    updatedAt
  }
}
`

// ListCommunityCreationsQuery pages through user-submitted candle designs
// pending moderation
const ListCommunityCreationsQuery = `
query listCommunityCreations($limit: Int, $nextToken: String) {
  listCommunityCreations(limit: $limit, nextToken: $nextToken) {
    items {
      id
      title
      imageUrl
      submittedBy
      status
      createdAt
    }
    nextToken
  }
}
`

// RejectCandleMutation is the moderation action (admin secret required)
const RejectCandleMutation = `
mutation rejectCandle($id: ID!, $reason: String, $moderator: String!) {
  rejectCandle(id: $id, reason: $reason, moderator: $moderator) {
    id
    status
  }
}
`

// Fragrance inventory CRUD

const ListFragrancesQuery = `
query listFragrances {
  listFragrances {
    items {
      id
      name
      notes
      stockOz
      isActive
    }
  }
}
`

const CreateFragranceMutation = `
mutation createFragrance($input: FragranceInput!) {
  createFragrance(input: $input) {
    id
    name
    notes
    stockOz
    isActive
  }
}
`

const UpdateFragranceMutation = `
mutation updateFragrance($id: ID!, $input: FragranceInput!) {
  updateFragrance(id: $id, input: $input) {
    id
    name
    notes
    stockOz
    isActive
  }
}
`

const DeleteFragranceMutation = `
mutation deleteFragrance($id: ID!) {
  deleteFragrance(id: $id) {
    id
  }
}
`

// MagicRequestConfigInput mirrors the storefront's custom-order form options
type MagicRequestConfigInput struct {
	Waxes []string `json:"waxes"`
	Sizes []string `json:"sizes"`
	Wicks []string `json:"wicks"`
	Jars  []string `json:"jars"`
}

// FragranceInput is the input for fragrance create/update
type FragranceInput struct {
	Name     string  `json:"name"`
	Notes    *string `json:"notes,omitempty"`
	StockOz  float64 `json:"stockOz"`
	IsActive bool    `json:"isActive"`
}
