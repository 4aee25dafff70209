package immutablex

// ListResponse exposes the unexported response envelope to the external
// test package.
type ListResponse[T any] = listResponse[T]
