// Package wire defines the messaging contracts shared by the warehouse
// actors: topic patterns, JSON payload schemas, and the 3-byte binary robot
// command format. Every actor speaks exclusively through these contracts;
// there is no shared memory between them.
package wire
