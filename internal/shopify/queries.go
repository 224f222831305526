package shopify

// ShopQuery reads the shop's display name
const ShopQuery = `
query Shop {
  shop {
    name
  }
}
`

// SellingPlanGroupsQuery lists the app's selling plan groups
const SellingPlanGroupsQuery = `
query getSellingPlanGroups($first: Int!, $after: String) {
  sellingPlanGroups(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        name
        merchantCode
        options
      }
    }
  }
}
`

// SellingPlanGroupQuery fetches a group with its plans (ids are needed for updates)
const SellingPlanGroupQuery = `
query getSellingPlanGroup($id: ID!) {
  sellingPlanGroup(id: $id) {
    id
    name
    merchantCode
    options
    sellingPlans(first: 31) {
      edges {
        node {
          id
          name
          options
          position
        }
      }
    }
  }
}
`
