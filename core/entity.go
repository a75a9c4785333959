package core

// Entity is a unique body identifier; IDs are monotonic and never reused
type Entity uint64

// NoEntity is the zero value, never assigned to a live body
const NoEntity Entity = 0
