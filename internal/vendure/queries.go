package vendure

// GraphQL documents for the Vendure shop API. Order-returning mutations share
// the order fragment so every mutation response carries the same projection
// the active order query does.

const orderFragment = `
fragment ActiveOrderFields on Order {
  __typename
  id
  code
  state
  currencyCode
  subTotal
  subTotalWithTax
  shipping
  shippingWithTax
  total
  totalWithTax
  totalQuantity
  couponCodes
  discounts {
    description
    amountWithTax
  }
  lines {
    id
    quantity
    unitPrice
    unitPriceWithTax
    linePrice
    linePriceWithTax
    productVariant {
      id
      name
      sku
      price
      priceWithTax
      currencyCode
      stockLevel
      product {
        id
        name
        slug
      }
    }
  }
  customer {
    id
    firstName
    lastName
    emailAddress
    phoneNumber
  }
  billingAddress {
    fullName
    company
    streetLine1
    streetLine2
    city
    province
    postalCode
    country
    countryCode
    phoneNumber
  }
  shippingAddress {
    fullName
    company
    streetLine1
    streetLine2
    city
    province
    postalCode
    country
    countryCode
    phoneNumber
  }
  shippingLines {
    shippingMethod {
      id
      code
      name
      description
    }
    priceWithTax
  }
  payments {
    id
    method
    amount
    state
  }
}`

const errorFragment = `
... on ErrorResult {
  __typename
  errorCode
  message
}`

const activeChannelQuery = `
query activeChannel {
  activeChannel {
    id
    code
    token
    defaultCurrencyCode
    defaultLanguageCode
  }
}`

const collectionsQuery = `
query collections {
  collections {
    items {
      id
      name
      slug
      parent {
        id
        name
        slug
      }
    }
  }
}`

const collectionQuery = `
query collection($slug: String!) {
  collection(slug: $slug) {
    id
    name
    slug
    description
    parent {
      id
      name
      slug
    }
  }
}`

const menuQuery = `
query menu {
  collections(options: { topLevelOnly: true }) {
    items {
      id
      name
      slug
    }
  }
}`

const productQuery = `
query product($slug: String!) {
  product(slug: $slug) {
    id
    name
    slug
    description
    variants {
      id
      name
      sku
      price
      priceWithTax
      currencyCode
      stockLevel
    }
    facetValues {
      id
      name
      code
      facet {
        id
        name
        code
      }
    }
  }
}`

const facetsQuery = `
query facets {
  facets {
    items {
      id
      name
      code
      values {
        id
        name
        code
      }
    }
  }
}`

const searchQuery = `
query search($input: SearchInput!) {
  search(input: $input) {
    totalItems
    items {
      productId
      productName
      slug
      description
      currencyCode
      priceWithTax {
        ... on SinglePrice {
          value
        }
        ... on PriceRange {
          min
          max
        }
      }
    }
    facetValues {
      count
      facetValue {
        id
        name
        code
        facet {
          id
          name
          code
        }
      }
    }
  }
}`

const availableCountriesQuery = `
query availableCountries {
  availableCountries {
    id
    code
    name
    enabled
  }
}`

const activeOrderQuery = orderFragment + `
query activeOrder {
  activeOrder {
    ...ActiveOrderFields
  }
}`

const orderByCodeQuery = orderFragment + `
query orderByCode($code: String!) {
  orderByCode(code: $code) {
    ...ActiveOrderFields
  }
}`

const addItemToOrderMutation = orderFragment + `
mutation addItemToOrder($productVariantId: ID!, $quantity: Int!) {
  addItemToOrder(productVariantId: $productVariantId, quantity: $quantity) {
    ...ActiveOrderFields
    ... on InsufficientStockError {
      __typename
      errorCode
      message
      quantityAvailable
    }` + errorFragment + `
  }
}`

const adjustOrderLineMutation = orderFragment + `
mutation adjustOrderLine($orderLineId: ID!, $quantity: Int!) {
  adjustOrderLine(orderLineId: $orderLineId, quantity: $quantity) {
    ...ActiveOrderFields
    ... on InsufficientStockError {
      __typename
      errorCode
      message
      quantityAvailable
    }` + errorFragment + `
  }
}`

const removeOrderLineMutation = orderFragment + `
mutation removeOrderLine($orderLineId: ID!) {
  removeOrderLine(orderLineId: $orderLineId) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const applyCouponCodeMutation = orderFragment + `
mutation applyCouponCode($couponCode: String!) {
  applyCouponCode(couponCode: $couponCode) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const removeCouponCodeMutation = orderFragment + `
mutation removeCouponCode($couponCode: String!) {
  removeCouponCode(couponCode: $couponCode) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const setOrderShippingAddressMutation = orderFragment + `
mutation setOrderShippingAddress($input: CreateAddressInput!) {
  setOrderShippingAddress(input: $input) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const setOrderBillingAddressMutation = orderFragment + `
mutation setOrderBillingAddress($input: CreateAddressInput!) {
  setOrderBillingAddress(input: $input) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const setCustomerForOrderMutation = orderFragment + `
mutation setCustomerForOrder($input: CreateCustomerInput!) {
  setCustomerForOrder(input: $input) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const setOrderShippingMethodMutation = orderFragment + `
mutation setOrderShippingMethod($shippingMethodId: [ID!]!) {
  setOrderShippingMethod(shippingMethodId: $shippingMethodId) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const addPaymentToOrderMutation = orderFragment + `
mutation addPaymentToOrder($input: PaymentInput!) {
  addPaymentToOrder(input: $input) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const transitionOrderToStateMutation = orderFragment + `
mutation transitionOrderToState($state: String!) {
  transitionOrderToState(state: $state) {
    ...ActiveOrderFields` + errorFragment + `
  }
}`

const eligibleShippingMethodsQuery = `
query eligibleShippingMethods {
  eligibleShippingMethods {
    id
    code
    name
    description
    price
    priceWithTax
  }
}`

const eligiblePaymentMethodsQuery = `
query eligiblePaymentMethods {
  eligiblePaymentMethods {
    id
    code
    name
    description
    isEligible
  }
}`

const authenticateMutation = `
mutation authenticate($username: String!, $password: String!) {
  authenticate(input: { native: { username: $username, password: $password } }) {
    ... on CurrentUser {
      __typename
      id
      identifier
    }` + errorFragment + `
  }
}`

const logOutMutation = `
mutation logOut {
  logout {
    success
  }
}`

const activeCustomerQuery = `
query activeCustomer {
  activeCustomer {
    id
    firstName
    lastName
    emailAddress
    phoneNumber
  }
}`

const registerCustomerAccountMutation = `
mutation registerCustomerAccount($input: RegisterCustomerInput!) {
  registerCustomerAccount(input: $input) {
    ... on Success {
      __typename
      success
    }` + errorFragment + `
  }
}`

const verifyCustomerAccountMutation = `
mutation verifyCustomerAccount($token: String!, $password: String) {
  verifyCustomerAccount(token: $token, password: $password) {
    ... on CurrentUser {
      __typename
      id
      identifier
    }` + errorFragment + `
  }
}`

const updateCustomerMutation = `
mutation updateCustomer($input: UpdateCustomerInput!) {
  updateCustomer(input: $input) {
    id
    firstName
    lastName
    emailAddress
    phoneNumber
  }
}`

const customerOrdersQuery = `
query customerOrders($options: OrderListOptions) {
  activeCustomer {
    orders(options: $options) {
      totalItems
      items {
        id
        code
        state
        currencyCode
        totalWithTax
        totalQuantity
      }
    }
  }
}`
