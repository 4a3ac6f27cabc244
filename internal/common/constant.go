package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on feed server requests.
const AccessTokenHeaderName = "access_token"

// DefaultLocation labels a moment when no coordinate is available.
const DefaultLocation = "Buenos Aires"

// LocalAuthor is how the terminal client signs chat messages and comments
// when nobody is logged in.
const LocalAuthor = "Tú"
